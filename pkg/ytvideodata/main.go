package ytvideodata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type VideoData struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailUrl string `json:"thumbnail_url"`
}

const (
	defaultEmbedURL = "https://www.youtube.com/oembed"
	defaultPageURL  = "https://youtu.be/"
)

// Client looks up public video metadata. The zero value is not usable, use
// New.
type Client struct {
	http     *http.Client
	embedURL string
	pageURL  string
}

type Option func(*Client)

// WithBaseURLs points the client at alternative oembed and page endpoints.
func WithBaseURLs(embedURL, pageURL string) Option {
	return func(c *Client) {
		c.embedURL = embedURL
		c.pageURL = pageURL
	}
}

func New(client *http.Client, opts ...Option) *Client {
	if client == nil {
		client = http.DefaultClient
	}

	c := &Client{
		http:     client,
		embedURL: defaultEmbedURL,
		pageURL:  defaultPageURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns metadata for videoId, falling back to the watch page when the
// video cannot be embedded.
func (c *Client) Get(ctx context.Context, videoId string) (*VideoData, error) {
	videoData, err := c.getVideoWithEmbed(ctx, videoId)
	if err != nil {
		if !errors.Is(err, ErrVideoNotEmbeddable) {
			return nil, fmt.Errorf("failed to get video data with embed: %w", err)
		}

		videoData, err = c.getFromPage(ctx, videoId)
		if err != nil {
			return nil, fmt.Errorf("failed to get video data from page: %w", err)
		}
	}

	return videoData, nil
}
