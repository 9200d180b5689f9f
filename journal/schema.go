// journal/schema.go
package journal

// Schema holds the ledger table. Decimals are stored as text so prices
// round-trip exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	date TEXT NOT NULL,
	stock TEXT NOT NULL,
	entry_price TEXT NOT NULL,
	target1 TEXT NOT NULL DEFAULT '',
	target2 TEXT NOT NULL DEFAULT '',
	target3 TEXT NOT NULL DEFAULT '',
	stop_loss TEXT NOT NULL DEFAULT '',
	quantity INTEGER NOT NULL,
	status TEXT NOT NULL,
	exit_price TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_position ON trades(position);
CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
`
