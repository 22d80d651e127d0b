package models

import "time"

type CandidateStatus string

const (
	CandidateNew       CandidateStatus = "new"
	CandidateScreening CandidateStatus = "screening"
	CandidateInterview CandidateStatus = "interview"
	CandidateOffer     CandidateStatus = "offer"
)

// Candidate is an applicant. PositionTitle is copied from the position at
// application time and is not refreshed when the position is edited.
type Candidate struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Experience    int             `json:"experience"`
	Location      string          `json:"location"`
	PositionID    string          `json:"positionId"`
	PositionTitle string          `json:"positionTitle"`
	ResumeURL     string          `json:"resumeUrl"`
	AppliedAt     time.Time       `json:"appliedAt"`
	Status        CandidateStatus `json:"status"`
}

// CandidateFilter narrows a candidate listing. Empty fields match everything.
// Experience is an inclusive "min-max" range such as "3-5".
type CandidateFilter struct {
	PositionID string `json:"positionId"`
	Experience string `json:"experience"`
	Location   string `json:"location"`
}
