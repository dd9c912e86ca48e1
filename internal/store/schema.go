package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS profiles (
	year               INTEGER PRIMARY KEY,
	filing_status      TEXT NOT NULL,
	standard_deduction TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS income_entries (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	year        INTEGER NOT NULL,
	source      TEXT NOT NULL,
	amount      TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	entry_date  TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_income_year ON income_entries(year);
`
