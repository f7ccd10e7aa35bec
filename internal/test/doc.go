// Package test contains helper functions for the package tests in this
// module. They report through t.Errorf so a test keeps going after a
// mismatch, and mark themselves with t.Helper so failures point at the
// caller.
package test
