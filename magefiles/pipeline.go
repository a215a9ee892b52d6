//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Index rebuilds public/search-index.json from the content tree and the
// tool catalog.
func Index() error {
	mg.Deps(Build)
	return sh.RunV("bin/tulz-content", "index", "build")
}

// Posts lists every post in the content tree.
func Posts() error {
	mg.Deps(Build)
	return sh.RunV("bin/tulz-content", "posts", "list")
}
