package gitrepo

import (
	"fmt"
	"strings"
)

// RemoteProtocol enumerates the git remote transports repofleet understands.
type RemoteProtocol string

// Supported remote protocols.
const (
	RemoteProtocolSSH   RemoteProtocol = "ssh"
	RemoteProtocolHTTPS RemoteProtocol = "https"
)

// RemoteURL is a git remote decomposed into protocol, host, and slug parts.
type RemoteURL struct {
	Protocol   RemoteProtocol
	Host       string
	Owner      string
	Repository string
}

// Slug renders the owner/name identifier for the remote.
func (remote RemoteURL) Slug() string {
	return remote.Owner + "/" + remote.Repository
}

// RemoteURLParseError reports a remote string that could not be decomposed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf("%s: %s", parseError.Input, parseError.Message)
}

// UnsupportedProtocolError reports a RemoteURL whose protocol cannot be rendered.
type UnsupportedProtocolError struct {
	Protocol RemoteProtocol
}

func (protocolError UnsupportedProtocolError) Error() string {
	return fmt.Sprintf("%s: unsupported remote protocol", protocolError.Protocol)
}

// ParseRemoteURL decomposes a git remote in ssh://, scp-like (git@host:path),
// or https:// form. Trailing ".git" suffixes are stripped from the repository
// name.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)

	var protocol RemoteProtocol
	var hostAndPath string
	var hostDelimiter string

	switch {
	case len(trimmedRemote) == 0:
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	case strings.HasPrefix(trimmedRemote, "ssh://"):
		protocol = RemoteProtocolSSH
		hostAndPath = stripUserInfo(strings.TrimPrefix(trimmedRemote, "ssh://"))
		hostDelimiter = "/"
	case strings.HasPrefix(trimmedRemote, "https://"):
		protocol = RemoteProtocolHTTPS
		hostAndPath = strings.TrimPrefix(trimmedRemote, "https://")
		hostDelimiter = "/"
	case strings.Contains(trimmedRemote, "@") && strings.Contains(trimmedRemote, ":"):
		protocol = RemoteProtocolSSH
		hostAndPath = stripUserInfo(trimmedRemote)
		hostDelimiter = ":"
	default:
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessage}
	}

	host, ownerAndName, splitFound := strings.Cut(hostAndPath, hostDelimiter)
	if !splitFound && hostDelimiter == ":" {
		host, ownerAndName, splitFound = strings.Cut(hostAndPath, "/")
	}
	if !splitFound || len(host) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessage}
	}

	owner, repositoryName, slugFound := strings.Cut(strings.Trim(ownerAndName, "/"), "/")
	repositoryName = strings.TrimSuffix(repositoryName, ".git")
	if !slugFound || len(owner) == 0 || len(repositoryName) == 0 || strings.Contains(repositoryName, "/") {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessage}
	}

	return RemoteURL{Protocol: protocol, Host: host, Owner: owner, Repository: repositoryName}, nil
}

const invalidRemoteURLMessage = "invalid remote url"

func stripUserInfo(remote string) string {
	if _, withoutUser, userFound := strings.Cut(remote, "@"); userFound {
		return withoutUser
	}
	return remote
}

// FormatRemoteURL renders the canonical textual form of a RemoteURL: scp-like
// for SSH remotes and a standard URL for HTTPS remotes.
func FormatRemoteURL(remote RemoteURL) (string, error) {
	for _, requiredPart := range []string{remote.Host, remote.Owner, remote.Repository} {
		if len(strings.TrimSpace(requiredPart)) == 0 {
			return "", RemoteURLParseError{Input: requiredPart, Message: requiredValueMessageConstant}
		}
	}

	switch remote.Protocol {
	case RemoteProtocolSSH:
		return fmt.Sprintf("git@%s:%s/%s.git", remote.Host, remote.Owner, remote.Repository), nil
	case RemoteProtocolHTTPS:
		return fmt.Sprintf("https://%s/%s/%s.git", remote.Host, remote.Owner, remote.Repository), nil
	default:
		return "", UnsupportedProtocolError{Protocol: remote.Protocol}
	}
}
