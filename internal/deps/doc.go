// Package deps checks that the executables tenebractl launches can be found
// on the search path.
package deps
