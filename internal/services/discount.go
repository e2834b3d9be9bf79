package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/motorfleet/cars-backend/internal/pkg/logger"
)

// ProcessSuccessMessage is returned by the discount process on success.
const ProcessSuccessMessage = "Process executed successfully"

// DiscountService runs the batch maintenance job: select owners whose
// purchase is older than 18 months, detach them from every car, then delete
// them and discount cars registered 12 to 18 months ago.
//
// The steps are independent store calls, not a transaction. A failure leaves
// the job partially applied and re-running it is the recovery path: detach
// and delete tolerate re-runs, the discount does not (it compounds).
type DiscountService interface {
	Run(ctx context.Context) (string, error)
}

type discountService struct {
	carService   CarService
	ownerService OwnerService
	log          *logger.Logger
}

func NewDiscountService(carService CarService, ownerService OwnerService, log *logger.Logger) DiscountService {
	serviceLog := log.With("service", "DiscountService")
	return &discountService{carService: carService, ownerService: ownerService, log: serviceLog}
}

func (ds *discountService) Run(ctx context.Context) (string, error) {
	staleIDs, err := ds.ownerService.IDsOlderThan18Months(ctx)
	if err != nil {
		return "", err
	}
	ds.log.Info("Running discount process", "staleOwners", len(staleIDs))

	// Detach must complete before the owner records go away, or cars would be
	// left pointing at deleted owners.
	if err := ds.carService.RemoveOwners(ctx, staleIDs); err != nil {
		return "", err
	}

	// Owner deletion and the car discount touch different collections; run
	// them concurrently and wait for both.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ds.ownerService.DeleteByIDs(gctx, staleIDs)
	})
	g.Go(func() error {
		_, err := ds.carService.Discount12to18Months(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	ds.log.Info("Discount process finished")
	return ProcessSuccessMessage, nil
}
