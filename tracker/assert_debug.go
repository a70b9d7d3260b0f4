//go:build learndebug

package tracker

const panicOnInvariant = true
