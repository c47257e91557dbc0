// Package utils provides common utility functions for the receiving service.
// It includes helper functions for converting the loosely typed values that
// come back from the invoice recognition provider (quantities as numbers or
// strings) into concrete Go types.
package utils
