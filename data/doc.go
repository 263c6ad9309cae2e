// Package data holds one-dimensional measurements and turns model values into
// error-normalized residuals.
//
// Data1D keeps x, y and optional dx, dy columns. A selection restricts the
// points used for fitting. Residuals are (y - f(x)) / dy over the selected
// points, with dy = 1 when no uncertainties are given. The dx column is read
// and carried, but no resolution smearing is applied.
//
// Load reads whitespace-separated text with 2, 3 or 4 columns:
//
//	x y
//	x y dy
//	x dx y dy
//
// Blank lines and lines starting with '#' are ignored. Points are sorted by x.
package data
