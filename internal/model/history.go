package model

import "time"

// TopMatch is a de-identified {program, score} pair retained in history.
type TopMatch struct {
	ProgramID string `json:"program_id"`
	Score     int    `json:"score"`
}

// HistoryRecord is the retained trace of one recommendation call. It never
// carries raw profile data: ProfileHash is a one-way hash of a canonicalized
// criteria subset, so records support frequency analytics without being
// reversible to the client.
type HistoryRecord struct {
	RecordedAt  time.Time  `json:"recorded_at"`
	ProfileHash string     `json:"profile_hash"`
	TopMatches  []TopMatch `json:"top_matches"`
}
