package models

// Envelope is the common response wrapper used by the JD and resume
// endpoints: {"status": ..., "message": ..., "data": ...}.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type CreateJobRequest struct {
	JobRole     string `json:"job_role"`
	Description string `json:"job_description"`
}

// MatchResult is one scored resume within a batch.
type MatchResult struct {
	ID              string     `json:"id,omitempty"`
	FileName        string     `json:"file_name"`
	RawScore        float64    `json:"raw_score"`
	NormalizedScore float64    `json:"normalized_score"`
	Tier            MatchTier  `json:"tier"`
	Color           MatchColor `json:"color"`
}

// ShortlistResult partitions ranked matches into the bounded shortlist and
// the remainder. Shortlisted is non-increasing in score and never overlaps
// Others.
type ShortlistResult struct {
	Shortlisted []MatchResult `json:"shortlisted"`
	Others      []MatchResult `json:"others"`
}

type AnalyzeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type AnalysisData struct {
	MatchScore    float64   `json:"match_score"`
	Tier          MatchTier `json:"tier"`
	MatchedSkills string    `json:"matched_skills"`
	MissingSkills string    `json:"missing_skills"`
	Suggestions   string    `json:"suggestions"`
	Summary       string    `json:"summary"`
}

type AnalysisResultResponse struct {
	ID           string        `json:"id"`
	Status       string        `json:"status"`
	Result       *AnalysisData `json:"result,omitempty"`
	ErrorMessage *string       `json:"error_message,omitempty"`
}

// ResumeSearchHit is one vector-search match from the resume index.
type ResumeSearchHit struct {
	ResumeID string  `json:"resume_id"`
	FileName string  `json:"file_name"`
	Score    float32 `json:"score"`
	Snippet  string  `json:"snippet"`
}
