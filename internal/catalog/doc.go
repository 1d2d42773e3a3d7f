// Package catalog lists repositories, either locally discovered working
// copies or the repositories of a GitHub organization or user.
package catalog
