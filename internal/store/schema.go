package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY,
	date TEXT,
	note TEXT,
	type TEXT
);
`

const (
	SampleNote = "sample"
	TypeNote   = "note"
)
