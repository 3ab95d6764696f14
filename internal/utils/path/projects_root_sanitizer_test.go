package pathutils_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/weagle/weagle/internal/utils/path"
)

const (
	testFallbackRootConstant = "./projects"
	testHomeDirectoryPath    = "/home/operator"
)

func TestProjectsRootSanitizerSanitize(t *testing.T) {
	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryPath, nil
	})

	testCases := []struct {
		name          string
		candidateRoot string
		expectedRoot  string
	}{
		{name: "EmptyFallsBackToDefault", candidateRoot: "", expectedRoot: testFallbackRootConstant},
		{name: "WhitespaceFallsBackToDefault", candidateRoot: "   ", expectedRoot: testFallbackRootConstant},
		{name: "TrimsSurroundingWhitespace", candidateRoot: "  ./stacks  ", expectedRoot: "./stacks"},
		{name: "StripsTrailingSlash", candidateRoot: "./projects/", expectedRoot: "./projects"},
		{name: "StripsRepeatedTrailingSlashes", candidateRoot: "./projects///", expectedRoot: "./projects"},
		{name: "ExpandsHomeShortcut", candidateRoot: "~/stacks", expectedRoot: filepath.Join(testHomeDirectoryPath, "stacks")},
		{name: "KeepsAbsolutePath", candidateRoot: "/srv/projects", expectedRoot: "/srv/projects"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			sanitizer := pathutils.NewProjectsRootSanitizerWithExpander(homeExpander, testFallbackRootConstant)
			require.Equal(t, testCase.expectedRoot, sanitizer.Sanitize(testCase.candidateRoot))
		})
	}
}

func TestProjectsRootSanitizerNilReceiverStillSanitizes(t *testing.T) {
	var sanitizer *pathutils.ProjectsRootSanitizer
	require.Equal(t, "./projects", sanitizer.Sanitize("./projects/"))
}
