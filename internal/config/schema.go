package config

// LabConfig is the top-level YAML structure.
type LabConfig struct {
	Version string     `yaml:"version" validate:"required"`
	Engine  EngineConf `yaml:"engine"`
	Levels  []LevelDef `yaml:"levels" validate:"required,min=1,dive"`
}

// EngineConf holds session and concurrency settings.
type EngineConf struct {
	Shards            int `yaml:"shards" validate:"gte=1,lte=256"`
	QueueDepth        int `yaml:"queue_depth" validate:"gte=1"`
	EventTimeoutMs    int `yaml:"event_timeout_ms" validate:"gte=1"`
	MaxSessions       int `yaml:"max_sessions" validate:"gte=1"`
	SessionTTLSeconds int `yaml:"session_ttl_seconds" validate:"gte=1"`
}

// LevelDef describes one exercise: the panel terminals, switches and the load.
type LevelDef struct {
	ID        string        `yaml:"id" validate:"required"`
	Title     string        `yaml:"title"`
	Hint      string        `yaml:"hint"`
	Disabled  bool          `yaml:"disabled"`
	Source    SourceDef     `yaml:"source"`
	Load      LoadDef       `yaml:"load"`
	Terminals []TerminalDef `yaml:"terminals" validate:"dive"`
	Switches  []SwitchDef   `yaml:"switches" validate:"dive"`
}

// SourceDef names the supply terminals; both must be listed under terminals.
type SourceDef struct {
	Hot     string `yaml:"hot" validate:"required"`
	Neutral string `yaml:"neutral" validate:"required,nefield=Hot"`
}

// LoadDef is the light fixture. Its terminals are implicit and need not be listed.
type LoadDef struct {
	Input  string  `yaml:"input" validate:"required"`
	Output string  `yaml:"output" validate:"required,nefield=Input"`
	X      float64 `yaml:"x" validate:"gte=0,lte=1"`
	Y      float64 `yaml:"y" validate:"gte=0,lte=1"`
}

// TerminalDef is a screw terminal the user can wire to.
// Kind is optional and inferred from the id when empty.
type TerminalDef struct {
	ID    string  `yaml:"id" validate:"required"`
	Label string  `yaml:"label"`
	Kind  string  `yaml:"kind" validate:"omitempty,oneof=hot-source neutral-source ground traveler contact load-terminal"`
	X     float64 `yaml:"x" validate:"gte=0,lte=1"`
	Y     float64 `yaml:"y" validate:"gte=0,lte=1"`
}

// SwitchDef references existing terminals.
//   - single_pole: terminals [a, b]
//   - three_way:   terminals [common, traveler1, traveler2]
type SwitchDef struct {
	ID        string   `yaml:"id" validate:"required"`
	Type      string   `yaml:"type" validate:"required,oneof=single_pole three_way"`
	Terminals []string `yaml:"terminals" validate:"required,min=2,max=3,dive,required"`
	X         float64  `yaml:"x" validate:"gte=0,lte=1"`
	Y         float64  `yaml:"y" validate:"gte=0,lte=1"`
}
