package replay

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	L  bool    `json:"l,omitempty"`  // Left
	R  bool    `json:"r,omitempty"`  // Right
	U  bool    `json:"u,omitempty"`  // Up
	D  bool    `json:"d,omitempty"`  // Down
	T  bool    `json:"t,omitempty"`  // ToolNext
	GP bool    `json:"gp,omitempty"` // GrapplePressed
	GR bool    `json:"gr,omitempty"` // GrappleReleased
	RS bool    `json:"rs,omitempty"` // Restart
	MX int     `json:"mx"`           // MouseX
	MY int     `json:"my"`           // MouseY
	DT float64 `json:"dt"`           // Frame time in seconds
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Level     string       `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
