package core

// Request types

// PieceSpec describes a piece to construct for a single query. Row and Column are
// pointers so a missing coordinate is distinguishable from square 0.
type PieceSpec struct {
	Kind   string `json:"kind" validate:"required,oneof=regular royal"`
	Color  string `json:"color" validate:"required,oneof=b w"`
	Row    *int   `json:"row" validate:"required"`
	Column *int   `json:"column" validate:"required"`
}

type MoveCheckRequest struct {
	Piece  PieceSpec `json:"piece"`
	Row    *int      `json:"row" validate:"required"`
	Column *int      `json:"column" validate:"required"`
}

type CaptureCheckRequest struct {
	Piece  PieceSpec `json:"piece"`
	Target PieceSpec `json:"target"`
}

type TargetsRequest struct {
	Piece PieceSpec `json:"piece"`
}

// Response types

type Square struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

type VerdictResponse struct {
	ProbeID string `json:"probeId"`
	Type    string `json:"type"` // "move" or "capture"
	Legal   bool   `json:"legal"`
}

type TargetsResponse struct {
	Kind    string   `json:"kind"`
	Color   string   `json:"color"`
	From    Square   `json:"from"`
	Targets []Square `json:"targets"`
}

type ProbeResponse struct {
	ProbeID      string `json:"probeId"`
	Type         string `json:"type"`
	PieceKind    string `json:"pieceKind"`
	PieceColor   string `json:"pieceColor"`
	PieceRow     int    `json:"pieceRow"`
	PieceColumn  int    `json:"pieceColumn"`
	TargetRow    int    `json:"targetRow"`
	TargetColumn int    `json:"targetColumn"`
	TargetKind   string `json:"targetKind,omitempty"`
	TargetColor  string `json:"targetColor,omitempty"`
	Legal        bool   `json:"legal"`
	TimeUTC      int64  `json:"timeUtc"`
}

type ProbesResponse struct {
	Probes []ProbeResponse `json:"probes"`
	Count  int             `json:"count"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Storage string `json:"storage"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Ptr returns a pointer to v, for building requests with required coordinates
func Ptr(v int) *int {
	return &v
}
