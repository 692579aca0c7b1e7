package store

const createTableSQL = `
CREATE TABLE IF NOT EXISTS reports (
    id            TEXT PRIMARY KEY,
    machine_label TEXT NOT NULL,
    hostname      TEXT NOT NULL,
    generated_at  TEXT NOT NULL,
    path          TEXT NOT NULL,
    domains       TEXT NOT NULL,
    include_all   INTEGER NOT NULL,
    detailed      INTEGER NOT NULL,
    size_bytes    INTEGER NOT NULL,
    body          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_generated_at ON reports(generated_at);
CREATE INDEX IF NOT EXISTS idx_reports_hostname ON reports(hostname);
`
