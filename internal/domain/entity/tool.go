package entity

// Tool is the ability currently equipped on the ball
type Tool int

const (
	ToolNone Tool = iota
	ToolBooster
	ToolGrapple
	toolCount
)

// String returns the string representation of the tool
func (t Tool) String() string {
	switch t {
	case ToolNone:
		return "None"
	case ToolBooster:
		return "Booster"
	case ToolGrapple:
		return "Grapple"
	default:
		return "Unknown"
	}
}

// Next cycles to the following tool
func (t Tool) Next() Tool {
	return (t + 1) % toolCount
}

// ParseTool returns the tool with the given name, or ToolNone
func ParseTool(name string) Tool {
	for t := ToolNone; t < toolCount; t++ {
		if t.String() == name {
			return t
		}
	}
	return ToolNone
}
