package transfer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/transfermarket/go/internal/authz"
	"github.com/mcdev12/transfermarket/go/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	ServiceName = "transfer.v1.TransferService"

	CreateListingProcedure  = "/" + ServiceName + "/CreateListing"
	UpdateListingProcedure  = "/" + ServiceName + "/UpdateListing"
	ResolveListingProcedure = "/" + ServiceName + "/ResolveListing"
	GetListingProcedure     = "/" + ServiceName + "/GetListing"
	ListListingsProcedure   = "/" + ServiceName + "/ListListings"
)

// PagingConfig bounds ListListings pages
type PagingConfig struct {
	DefaultSize int `yaml:"default_size"`
	MaxSize     int `yaml:"max_size"`
}

// DefaultPagingConfig is 50 listings per page, at most 100
func DefaultPagingConfig() PagingConfig {
	return PagingConfig{DefaultSize: 50, MaxSize: 100}
}

// TransferApp defines what the service layer needs from the transfer application
type TransferApp interface {
	CreateListing(ctx context.Context, actor authz.Actor, playerID uuid.UUID, askPrice decimal.Decimal) (*models.Listing, error)
	UpdateListing(ctx context.Context, actor authz.Actor, listingID uuid.UUID, askPrice decimal.Decimal) (*models.Listing, error)
	ResolveListing(ctx context.Context, actor authz.Actor, listingID uuid.UUID, buyerID *uuid.UUID) (*Resolution, error)
	GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	ListListings(ctx context.Context, page *Page) (*models.ListingPage, error)
}

// Service exposes the transfer market over Connect
type Service struct {
	app    TransferApp
	paging PagingConfig
}

// NewService creates a new transfer service
func NewService(app TransferApp, paging PagingConfig) *Service {
	if paging.DefaultSize <= 0 || paging.MaxSize <= 0 {
		paging = DefaultPagingConfig()
	}
	return &Service{
		app:    app,
		paging: paging,
	}
}

// NewHandler mounts every procedure under the service path
func NewHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CreateListingProcedure, connect.NewUnaryHandler(CreateListingProcedure, svc.CreateListing, opts...))
	mux.Handle(UpdateListingProcedure, connect.NewUnaryHandler(UpdateListingProcedure, svc.UpdateListing, opts...))
	mux.Handle(ResolveListingProcedure, connect.NewUnaryHandler(ResolveListingProcedure, svc.ResolveListing, opts...))
	mux.Handle(GetListingProcedure, connect.NewUnaryHandler(GetListingProcedure, svc.GetListing, opts...))
	mux.Handle(ListListingsProcedure, connect.NewUnaryHandler(ListListingsProcedure, svc.ListListings, opts...))
	return "/" + ServiceName + "/", mux
}

// CreateListing lists one of the caller's players
func (s *Service) CreateListing(ctx context.Context, req *connect.Request[CreateListingRequest]) (*connect.Response[CreateListingResponse], error) {
	playerID, err := parseID("player_id", req.Msg.PlayerID)
	if err != nil {
		return nil, err
	}
	askPrice, err := parseAskPrice(req.Msg.AskPrice)
	if err != nil {
		return nil, err
	}

	listing, err := s.app.CreateListing(ctx, authz.ActorFromContext(ctx), playerID, askPrice)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&CreateListingResponse{
		Listing: listingToMessage(listing),
	}), nil
}

// UpdateListing changes the ask price of one of the caller's listings
func (s *Service) UpdateListing(ctx context.Context, req *connect.Request[UpdateListingRequest]) (*connect.Response[UpdateListingResponse], error) {
	listingID, err := parseID("listing_id", req.Msg.ListingID)
	if err != nil {
		return nil, err
	}
	askPrice, err := parseAskPrice(req.Msg.AskPrice)
	if err != nil {
		return nil, err
	}

	listing, err := s.app.UpdateListing(ctx, authz.ActorFromContext(ctx), listingID, askPrice)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&UpdateListingResponse{
		Listing: listingToMessage(listing),
	}), nil
}

// ResolveListing withdraws a listing or buys the listed player
func (s *Service) ResolveListing(ctx context.Context, req *connect.Request[ResolveListingRequest]) (*connect.Response[ResolveListingResponse], error) {
	listingID, err := parseID("listing_id", req.Msg.ListingID)
	if err != nil {
		return nil, err
	}

	var buyerID *uuid.UUID
	if req.Msg.BuyerTeamID != "" {
		id, err := parseID("buyer_team_id", req.Msg.BuyerTeamID)
		if err != nil {
			return nil, err
		}
		buyerID = &id
	}

	res, err := s.app.ResolveListing(ctx, authz.ActorFromContext(ctx), listingID, buyerID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(resolutionToMessage(res)), nil
}

// GetListing retrieves a listing by ID
func (s *Service) GetListing(ctx context.Context, req *connect.Request[GetListingRequest]) (*connect.Response[GetListingResponse], error) {
	listingID, err := parseID("listing_id", req.Msg.ListingID)
	if err != nil {
		return nil, err
	}

	listing, err := s.app.GetListing(ctx, listingID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&GetListingResponse{
		Listing: listingToMessage(listing),
	}), nil
}

// ListListings retrieves listings ordered by ascending ask price
func (s *Service) ListListings(ctx context.Context, req *connect.Request[ListListingsRequest]) (*connect.Response[ListListingsResponse], error) {
	page, err := s.page(req.Msg)
	if err != nil {
		return nil, err
	}

	result, err := s.app.ListListings(ctx, page)
	if err != nil {
		return nil, toConnectError(err)
	}

	items := make([]*ListingMessage, len(result.Listings))
	for i := range result.Listings {
		items[i] = listingToMessage(&result.Listings[i])
	}

	return connect.NewResponse(&ListListingsResponse{
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
		Items:         items,
	}), nil
}

func (s *Service) page(msg *ListListingsRequest) (*Page, error) {
	if msg.Unpaged {
		if msg.Page != nil || msg.Size != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("unpaged requests take no page or size"))
		}
		return nil, nil
	}

	page := &Page{Number: 0, Size: s.paging.DefaultSize}
	if msg.Page != nil {
		if *msg.Page < 0 {
			return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("page must not be negative"))
		}
		page.Number = *msg.Page
	}
	if msg.Size != nil {
		if *msg.Size < 0 {
			return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("size must not be negative"))
		}
		if *msg.Size > 0 {
			page.Size = min(*msg.Size, s.paging.MaxSize)
		}
	}
	if page.Number > math.MaxInt32/page.Size {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("page %d is out of range for size %d", page.Number, page.Size))
	}
	return page, nil
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid %s: %w", field, err))
	}
	return id, nil
}

func parseAskPrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid ask_price: %w", err))
	}
	if price.IsNegative() {
		return decimal.Zero, connect.NewError(connect.CodeInvalidArgument, ErrInvalidAskPrice)
	}
	return price, nil
}

func toConnectError(err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, ErrListingNotFound),
		errors.Is(err, ErrPlayerNotFound),
		errors.Is(err, ErrTeamNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, ErrUnauthorized):
		code = connect.CodePermissionDenied
	case errors.Is(err, ErrListingDuplicate):
		code = connect.CodeAlreadyExists
	case errors.Is(err, ErrInsufficientBudget):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, ErrInvalidAskPrice):
		code = connect.CodeInvalidArgument
	case errors.Is(err, context.Canceled):
		code = connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		code = connect.CodeDeadlineExceeded
	default:
		log.Error().Err(err).Msg("transfer request failed")
		code = connect.CodeInternal
	}
	return connect.NewError(code, err)
}
