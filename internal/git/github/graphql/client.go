package graphql

import (
	"context"
	"net/http"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// newClient creates a new GitHub GraphQL client with authentication layered over httpClient
func newClient(token string, httpClient *http.Client) *githubv4.Client {
	return githubv4.NewClient(newAuthenticatedHTTPClient(token, httpClient))
}

func newAuthenticatedHTTPClient(token string, httpClient *http.Client) *http.Client {
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	ctx := context.Background()
	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}
	return oauth2.NewClient(ctx, src)
}
