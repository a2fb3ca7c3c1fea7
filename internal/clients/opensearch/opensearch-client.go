package opensearch_client

import (
	"crypto/tls"
	"net/http"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"

	"github.com/init-pkg/soupis-parser/internal/config"
)

func New(cfg *config.Config) *opensearchapi.Client {
	client, err := opensearchapi.NewClient(
		opensearchapi.Config{
			Client: opensearch.Config{
				Transport: &http.Transport{
					TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // dev cluster runs on a self-signed cert
				},
				Addresses: []string{cfg.Clients.OpenSearch.Address},
				Username:  cfg.Clients.OpenSearch.Username,
				Password:  cfg.Clients.OpenSearch.Password,
			},
		},
	)
	if err != nil {
		panic(err)
	}

	return client
}
