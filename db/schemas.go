package db

var schema = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS products (
	product_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
	name VARCHAR(255) NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	quantity INT NOT NULL DEFAULT 0 CHECK (quantity >= 0)
);

CREATE TABLE IF NOT EXISTS orders (
	order_id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
	item_name VARCHAR(255) NOT NULL,
	quantity INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
