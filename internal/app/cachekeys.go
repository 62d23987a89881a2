package app

const (
	keyResidentStats  = "stats:residents"
	keyRoomStats      = "stats:rooms"
	keyPollStats      = "stats:polls"
	keyComplaintStats = "stats:complaints"
	keyMovementStats  = "stats:movements"
	keyMenuStats      = "stats:menu"
	keyGrade          = "stats:grade"
	keyDashboard      = "dashboard:management"
)

// staleKeys lists the cached views a change to one record kind invalidates.
var staleKeys = map[string][]string{
	KindResident:     {keyResidentStats, keyDashboard},
	KindRoom:         {keyRoomStats, keyDashboard},
	KindPoll:         {keyPollStats, keyDashboard},
	KindComplaint:    {keyComplaintStats, keyDashboard},
	KindMovement:     {keyMovementStats, keyDashboard},
	KindMenuItem:     {keyMenuStats},
	KindRating:       {keyGrade, keyDashboard},
	KindAnnouncement: {keyDashboard},
}

func allStatKeys() []string {
	return []string{
		keyResidentStats, keyRoomStats, keyPollStats, keyComplaintStats,
		keyMovementStats, keyMenuStats, keyGrade, keyDashboard,
	}
}
