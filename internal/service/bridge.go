package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/enlamano/bcugateway/internal/domain/errs"
	"github.com/enlamano/bcugateway/internal/domain/model"
)

const fechaLayout = "2006-01-02"

// QuoteFetcher is the upstream contract the bridge depends on. The SOAP
// client implements it; tests substitute stubs.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, moneda, fecha string) (model.ExchangeQuote, error)
	FetchHistory(ctx context.Context, moneda, fechaInicio, fechaFin string) ([]model.HistoricalRecord, error)
}

// BridgeService defines the business operations the gateway exposes.
// This decouples HTTP handlers from the SOAP adapter.
type BridgeService interface {
	Cotizacion(ctx context.Context, moneda, fecha string) (model.ExchangeQuote, error)
	Arbitraje(ctx context.Context, monedaOrigen, monedaDestino, fecha string) (model.ArbitrageResult, error)
	Historico(ctx context.Context, moneda, fechaInicio, fechaFin string) ([]model.HistoricalRecord, error)
}

type bridgeService struct {
	fetcher QuoteFetcher
}

func NewBridgeService(fetcher QuoteFetcher) BridgeService {
	return &bridgeService{fetcher: fetcher}
}

// Cotizacion fetches a single quote for one currency and date.
func (s *bridgeService) Cotizacion(ctx context.Context, moneda, fecha string) (model.ExchangeQuote, error) {
	return s.fetcher.FetchQuote(ctx, moneda, fecha)
}

// Arbitraje fetches the origin and destination quotes for the same date
// concurrently and derives the arbitrage rate. The two fetches are
// independent; if either fails the whole operation fails with that leg's
// classified error and no partial result is produced.
func (s *bridgeService) Arbitraje(ctx context.Context, monedaOrigen, monedaDestino, fecha string) (model.ArbitrageResult, error) {
	var origen, destino model.ExchangeQuote

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := s.fetcher.FetchQuote(gctx, monedaOrigen, fecha)
		if err != nil {
			return err
		}
		origen = q
		return nil
	})
	g.Go(func() error {
		q, err := s.fetcher.FetchQuote(gctx, monedaDestino, fecha)
		if err != nil {
			return err
		}
		destino = q
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.ArbitrageResult{}, err
	}

	return model.NewArbitrageResult(monedaOrigen, monedaDestino, fecha, origen, destino), nil
}

// Historico fetches the historical series for one currency over a date
// range. The range precondition (fechaInicio ≤ fechaFin, both valid ISO
// dates) is enforced here, before anything reaches the upstream.
func (s *bridgeService) Historico(ctx context.Context, moneda, fechaInicio, fechaFin string) ([]model.HistoricalRecord, error) {
	inicio, err := time.Parse(fechaLayout, fechaInicio)
	if err != nil {
		return nil, errs.New(errs.KindMalformedRequest,
			"Campo 'fechaInicio' inválido, se espera formato YYYY-MM-DD: '"+fechaInicio+"'")
	}
	fin, err := time.Parse(fechaLayout, fechaFin)
	if err != nil {
		return nil, errs.New(errs.KindMalformedRequest,
			"Campo 'fechaFin' inválido, se espera formato YYYY-MM-DD: '"+fechaFin+"'")
	}
	if inicio.After(fin) {
		return nil, errs.New(errs.KindMalformedRequest,
			"El rango de fechas es inválido: 'fechaInicio' debe ser anterior o igual a 'fechaFin'")
	}

	return s.fetcher.FetchHistory(ctx, moneda, fechaInicio, fechaFin)
}
