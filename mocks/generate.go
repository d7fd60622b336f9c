package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/halcyon-lab/halcyon-trading/pkg/marketdata/provider Provider
//go:generate mockgen -destination=./mock_writer.go -package=mocks github.com/halcyon-lab/halcyon-trading/pkg/marketdata/writer Writer
