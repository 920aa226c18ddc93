package pgstore

// SchemaSQL creates the catalog tables read by the postgres repositories.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS products (
    id             INTEGER PRIMARY KEY,
    name           TEXT NOT NULL,
    brand          TEXT NOT NULL DEFAULT '',
    category       TEXT NOT NULL DEFAULT '',
    price          NUMERIC(12,2) NOT NULL,
    discount_price NUMERIC(12,2) NOT NULL,
    images         TEXT[] NOT NULL DEFAULT '{}',
    sizes          TEXT[] NOT NULL DEFAULT '{}',
    colors         TEXT[] NOT NULL DEFAULT '{}',
    rating         NUMERIC(2,1) NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
    review_count   INTEGER NOT NULL DEFAULT 0,
    in_stock       BOOLEAN NOT NULL DEFAULT TRUE,
    description    TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products (lower(category));

CREATE TABLE IF NOT EXISTS reviews (
    id            SERIAL PRIMARY KEY,
    product_id    INTEGER NOT NULL REFERENCES products(id),
    user_name     TEXT NOT NULL,
    user_avatar   TEXT NOT NULL DEFAULT '',
    rating        INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
    comment       TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    helpful_votes INTEGER NOT NULL DEFAULT 0 CHECK (helpful_votes >= 0)
);
CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews (product_id);
`
