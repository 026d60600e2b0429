package moviesvc

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_client.go github.com/kholland/moviedeck/pkg/moviesvc ClientInterface
