// Package utils provides loose type conversions for query strings and driver values.
package utils
