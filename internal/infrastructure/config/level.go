package config

// LevelConfig is the root config for level JSON files
type LevelConfig struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Size      LevelSizeConfig `json:"size"`
	TileDir   string          `json:"tileDir"` // Directory of <tx>_<ty>.tile files, relative to the level root
	Spawn     PositionConfig  `json:"spawn"`
	StartTool string          `json:"startTool"`
}

// LevelSizeConfig is the level extent in tiles
type LevelSizeConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type PositionConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BallConfig is the root config for ball.json
type BallConfig struct {
	InnerStencil string `json:"innerStencil"`
	OuterStencil string `json:"outerStencil"`
	Color        string `json:"color"` // #RRGGBB
}
