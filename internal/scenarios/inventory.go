package scenarios

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	composeFileReadErrorTemplateConstant  = "unable to read compose file %s: %w"
	composeFileParseErrorTemplateConstant = "unable to parse compose file %s: %v"
)

// ComposeFileParseError reports a compose file that could not be decoded.
type ComposeFileParseError struct {
	Path  string
	Cause error
}

// Error describes the parse failure.
func (parseError ComposeFileParseError) Error() string {
	return fmt.Sprintf(composeFileParseErrorTemplateConstant, parseError.Path, parseError.Cause)
}

// Unwrap exposes the underlying decoding error.
func (parseError ComposeFileParseError) Unwrap() error {
	return parseError.Cause
}

type composeDocument struct {
	Services map[string]yaml.Node `yaml:"services"`
}

// ServiceInventory reads service names out of docker-compose files.
type ServiceInventory struct{}

// NewServiceInventory constructs a ServiceInventory instance.
func NewServiceInventory() *ServiceInventory {
	return &ServiceInventory{}
}

// ListServices returns the sorted service names declared by the compose file.
func (inventory *ServiceInventory) ListServices(composeFilePath string) ([]string, error) {
	composeFileContent, readError := os.ReadFile(composeFilePath)
	if readError != nil {
		return nil, fmt.Errorf(composeFileReadErrorTemplateConstant, composeFilePath, readError)
	}

	parsedDocument := composeDocument{}
	unmarshalError := yaml.Unmarshal(composeFileContent, &parsedDocument)
	if unmarshalError != nil {
		return nil, ComposeFileParseError{Path: composeFilePath, Cause: unmarshalError}
	}

	serviceNames := make([]string, 0, len(parsedDocument.Services))
	for serviceName := range parsedDocument.Services {
		serviceNames = append(serviceNames, serviceName)
	}
	sort.Strings(serviceNames)

	return serviceNames, nil
}
