package pathutil_test

import (
	"fmt"

	"foodgram/internal/handler/http/pathutil"
)

// Every recipe id maps to the same metrics label.
func ExampleNormalizePath() {
	fmt.Println(pathutil.NormalizePath("/api/recipes/123/"))
	fmt.Println(pathutil.NormalizePath("/api/recipes/456/shopping_cart/"))
	fmt.Println(pathutil.NormalizePath("/api/recipes/download_shopping_cart"))

	// Output:
	// /api/recipes/:id/
	// /api/recipes/:id/shopping_cart/
	// /api/recipes/download_shopping_cart/
}
