package db

import (
	"database/sql"
	_ "embed"
)

//go:embed seeds/tags.sql
var seedTagsSQL string

// schema lists the CREATE TABLE statements in dependency order.
var schema = []string{
	`
CREATE TABLE IF NOT EXISTS users (
    id            BIGSERIAL PRIMARY KEY,
    email         VARCHAR(254) NOT NULL UNIQUE,
    username      VARCHAR(150) NOT NULL UNIQUE,
    first_name    VARCHAR(150) NOT NULL,
    last_name     VARCHAR(150) NOT NULL,
    password_hash TEXT NOT NULL,
    avatar        TEXT NOT NULL DEFAULT '',
    date_joined   TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS follows (
    user_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    PRIMARY KEY (user_id, author_id),
    CONSTRAINT chk_follow_self CHECK (user_id <> author_id)
)`,
	`
CREATE TABLE IF NOT EXISTS tags (
    id    BIGSERIAL PRIMARY KEY,
    name  VARCHAR(32) NOT NULL UNIQUE,
    color CHAR(7) NOT NULL UNIQUE,
    slug  VARCHAR(32) NOT NULL UNIQUE
)`,
	`
CREATE TABLE IF NOT EXISTS ingredients (
    id               BIGSERIAL PRIMARY KEY,
    name             VARCHAR(128) NOT NULL,
    measurement_unit VARCHAR(64) NOT NULL,
    CONSTRAINT uq_ingredient_name_unit UNIQUE (name, measurement_unit)
)`,
	`
CREATE TABLE IF NOT EXISTS recipes (
    id           BIGSERIAL PRIMARY KEY,
    author_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    name         VARCHAR(256) NOT NULL,
    text         TEXT NOT NULL,
    cooking_time INTEGER NOT NULL CHECK (cooking_time >= 1),
    image        TEXT NOT NULL,
    pub_date     TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS recipe_tags (
    recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
    tag_id    BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (recipe_id, tag_id)
)`,
	`
CREATE TABLE IF NOT EXISTS recipe_ingredients (
    recipe_id     BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
    ingredient_id BIGINT NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
    amount        INTEGER NOT NULL CHECK (amount >= 1),
    PRIMARY KEY (recipe_id, ingredient_id)
)`,
	`
CREATE TABLE IF NOT EXISTS favorites (
    user_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
    PRIMARY KEY (user_id, recipe_id)
)`,
	`
CREATE TABLE IF NOT EXISTS shopping_cart (
    user_id   BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
    PRIMARY KEY (user_id, recipe_id)
)`,
}

// indexes supplement the primary keys above.
var indexes = []string{
	// 一覧の ORDER BY pub_date DESC 用
	`CREATE INDEX IF NOT EXISTS idx_recipes_pub_date ON recipes(pub_date DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_recipes_author_id ON recipes(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recipe_tags_tag_id ON recipe_tags(tag_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_ingredient_id ON recipe_ingredients(ingredient_id)`,
	`CREATE INDEX IF NOT EXISTS idx_follows_author_id ON follows(author_id)`,
	// 材料名の前方一致検索 (lower(name) LIKE 'x%') 用
	`CREATE INDEX IF NOT EXISTS idx_ingredients_lower_name ON ingredients(lower(name) text_pattern_ops)`,
}

// MigrateUp creates the Foodgram schema and seeds the default tags.
// Every statement is idempotent.
func MigrateUp(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// シードデータの投入(重複は自動的にスキップ)
	if _, err := db.Exec(seedTagsSQL); err != nil {
		return err
	}

	return nil
}

// MigrateDown drops every Foodgram table in reverse dependency order.
// Use with caution: this deletes all data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS shopping_cart`,
		`DROP TABLE IF EXISTS favorites`,
		`DROP TABLE IF EXISTS recipe_ingredients`,
		`DROP TABLE IF EXISTS recipe_tags`,
		`DROP TABLE IF EXISTS recipes`,
		`DROP TABLE IF EXISTS ingredients`,
		`DROP TABLE IF EXISTS tags`,
		`DROP TABLE IF EXISTS follows`,
		`DROP TABLE IF EXISTS users`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
