package main

import "github.com/davetashner/bigo/internal/testable"

// cmdFS is the file system implementation used by CLI commands.
// Override in tests with a testable.MockFileSystem.
var cmdFS testable.FileSystem = testable.DefaultFS

// cmdGit opens git repositories for batch --changed.
// Override in tests with a testable.MockGitOpener.
var cmdGit testable.GitOpener = testable.DefaultGitOpener

// workDir is where project configuration is read and changed files are
// looked up.
var workDir = "."
