// Package plist implements the lexer, parse driver, and in-memory
// object model for the ASCII ("OpenStep"/GNUStep) property list
// dialect. XML and binary property lists are different formats with
// different codecs; this package deliberately does not read or write
// them, and it does not write ASCII plists back out — it only parses.
package plist
