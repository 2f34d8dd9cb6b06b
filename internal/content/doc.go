// Package content holds the level pools the four games draw their session
// items from.
//
// Math questions, shape patterns and tile patterns are built in and
// deterministic per level. Word Wizard starts from a built-in word list per
// level and, when a generation.WordGenerator is configured, tops the list up
// with generated words that are cached per level.
package content
