// ABOUTME: SQLite database schema for tubescribe storage
// ABOUTME: A key-value entries table for chunk records and a per-video embeddings table
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Transcripts and chunk sequences, JSON encoded
CREATE TABLE IF NOT EXISTS entries (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Embeddings table (vector storage for semantic search)
CREATE TABLE IF NOT EXISTS embeddings (
    id TEXT PRIMARY KEY,
    video_id TEXT NOT NULL,
    start_time REAL NOT NULL,
    end_time REAL NOT NULL,
    text TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_embeddings_video ON embeddings(video_id, start_time);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
