// Package cli implements foodgramctl, the operator tool that migrates the
// schema and loads the ingredient and tag catalogues.
//
// Usage:
//
//	foodgramctl migrate
//	foodgramctl load-ingredients --file data/ingredients.csv
//	foodgramctl load-tags --file data/tags.yaml
//
// The database is taken from --database-url or DATABASE_URL.
package cli
