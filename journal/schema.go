// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	balance REAL NOT NULL,
	currency TEXT NOT NULL DEFAULT '$',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS trades (
	id INTEGER PRIMARY KEY,
	account_id TEXT NOT NULL,
	open_date TEXT NOT NULL,
	close_date TEXT,
	pair TEXT NOT NULL,
	direction TEXT NOT NULL,
	position_size TEXT,
	setup TEXT,
	risk REAL,
	pnl REAL NOT NULL,
	r REAL,
	notes TEXT,
	psychology TEXT,
	screenshot_before TEXT,
	screenshot_after TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_trades_signature ON trades(account_id, open_date, pair, direction);

CREATE TABLE IF NOT EXISTS trading_plan (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	daily_routine TEXT NOT NULL,
	rules TEXT NOT NULL,
	goals TEXT,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS macro_events (
	id INTEGER PRIMARY KEY,
	date TEXT NOT NULL,
	event TEXT NOT NULL,
	category TEXT NOT NULL,
	actual REAL NOT NULL,
	forecast REAL NOT NULL,
	previous REAL,
	impact TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_macro_events_signature ON macro_events(date, event);
`
