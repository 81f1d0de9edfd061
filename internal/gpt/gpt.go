package gpt

import (
	"sync"

	gpt "github.com/m-ariany/gpt-chat-client"
)

var (
	client *gpt.Client
	once   sync.Once
)

type ClientFactory interface {
	Client() (Client, error)
}

type factory struct {
}

// NewClientFactory creates the process wide client once; every Client() call
// hands out an independent clone so instructions never leak between requests.
func NewClientFactory(cnf ClientConfig) (ClientFactory, error) {
	var err error
	once.Do(func() {
		client, err = gpt.NewClient(cnf)
	})
	return &factory{}, err
}

func (g factory) Client() (Client, error) {
	return Client{Client: client.Clone()}, nil
}

type Client struct {
	*gpt.Client
}

type ClientConfig = gpt.ClientConfig
