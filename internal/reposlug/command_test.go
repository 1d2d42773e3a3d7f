package reposlug_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repofleet/internal/reposlug"
)

type stubSlugResolver struct {
	recordedDirectories []string
	repositorySlug      string
	resolutionFailure   error
}

func (resolver *stubSlugResolver) ResolveSlug(directoryPath string) (string, error) {
	resolver.recordedDirectories = append(resolver.recordedDirectories, directoryPath)
	if resolver.resolutionFailure != nil {
		return "", resolver.resolutionFailure
	}
	return resolver.repositorySlug, nil
}

func TestSlugCommandPrintsSlug(testInstance *testing.T) {
	resolver := &stubSlugResolver{repositorySlug: "acme/widgets"}

	builder := &reposlug.CommandBuilder{SlugResolver: resolver}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs([]string{"/workspace/widgets"})

	executionError := command.Execute()
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, []string{"/workspace/widgets"}, resolver.recordedDirectories)
	require.Equal(testInstance, "acme/widgets\n", outputBuffer.String())
}

func TestSlugCommandDefaultsToCurrentDirectory(testInstance *testing.T) {
	resolver := &stubSlugResolver{repositorySlug: "acme/widgets"}

	builder := &reposlug.CommandBuilder{SlugResolver: resolver}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs([]string{})

	executionError := command.Execute()
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, []string{"."}, resolver.recordedDirectories)
}

func TestSlugCommandSurfacesResolutionFailure(testInstance *testing.T) {
	resolver := &stubSlugResolver{resolutionFailure: errors.New("remote 'origin' url not found")}

	builder := &reposlug.CommandBuilder{SlugResolver: resolver}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs([]string{})

	executionError := command.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "origin")
}
