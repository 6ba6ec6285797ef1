package domain

// LogRecord is one distinct error signature of a parsed log file.
type LogRecord struct {
	ID        uint32 `json:"id"`
	Count     int    `json:"cnt"`
	Timestamp string `json:"time"`
	Message   string `json:"msg"`
	Tags      string `json:"cls"`
}

// ParseConfig is resolved once per parse and never mutated by the parser.
type ParseConfig struct {
	FilePath string
	// LinkTemplate holds {{path}} and {{line_number}} placeholders; empty disables linking.
	LinkTemplate    string
	LinkPathSearch  string
	LinkPathReplace string
}

// Snapshot is a parse result as published to the broker.
type Snapshot struct {
	File     string      `json:"file"`
	ParsedAt string      `json:"parsed_at"`
	Records  []LogRecord `json:"records"`
}
