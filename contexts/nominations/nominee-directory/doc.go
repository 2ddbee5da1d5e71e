// Package nomineedirectory owns nominee profiles inside the nominations
// context: registration, lookup, the featured spotlight, and name search.
package nomineedirectory
