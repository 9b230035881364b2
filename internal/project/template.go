package project

import "fmt"

// DefaultManifest returns the starter zoia.toml written by `zoia init`.
func DefaultManifest(name string) string {
	return fmt.Sprintf(`# Zoia project manifest
[project]
name = %q
chapters = "chapters"

# header parameters: name -> type
[header]
title = "Text"
fandom = "Tag"
rating = "Choice:general,teen,mature,explicit"
complete = "Bool"

# command parameters; "_" lists positional parameter types in order
[commands.note]
_ = ["Text"]

[commands.tag]
_ = ["Tag"]
`, name)
}

// DefaultChapter returns the first chapter written by `zoia init`.
func DefaultChapter(title string) string {
	return fmt.Sprintf(`\zoia[title = %s,
  fandom = Original Work,
  rating = general,
  complete = no]
It was a **dark** and *stormy* night.
\note[first draft]
`, title)
}
