// Package entry implements interactive recipe entry: parsing the free-text
// lines a user types and driving the prompt loop that turns them into
// recipe, serve and quantity rows.
package entry
