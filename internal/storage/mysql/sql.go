package mysql

import _ "embed"

//go:embed schema.sql
var schemaSQL string

const upsertRecordSQL = `
INSERT INTO records (kind, id, body)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  body       = VALUES(body),
  updated_at = CURRENT_TIMESTAMP
`

const insertRecordsPrefix = "INSERT INTO records (kind, id, body)\nVALUES "

const insertRecordsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  body       = VALUES(body),\n" +
	"  updated_at = CURRENT_TIMESTAMP\n"

// seq keeps first-insert order; an upsert of an existing id does not move it.
const listRecordsSQL = `
SELECT body
FROM records
WHERE kind = ?
ORDER BY seq
`

const getRecordSQL = `
SELECT body
FROM records
WHERE kind = ? AND id = ?
`

const deleteRecordSQL = `
DELETE FROM records
WHERE kind = ? AND id = ?
`
