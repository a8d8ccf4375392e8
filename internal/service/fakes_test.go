package service

import (
	"context"
	"strings"
	"time"

	"packmarket/internal/client"
	"packmarket/internal/errs"
	"packmarket/internal/model"
)

type fakePackRepo struct {
	packs map[string]*model.Pack
}

func (f *fakePackRepo) FindByID(ctx context.Context, packID string) (*model.Pack, error) {
	pack, ok := f.packs[packID]
	if !ok || pack.Deleted {
		return nil, errs.ErrNotFound
	}
	return pack, nil
}

func (f *fakePackRepo) ListBySeller(ctx context.Context, sellerID string) ([]*model.Pack, error) {
	var packs []*model.Pack
	for _, pack := range f.packs {
		if pack.SellerID == sellerID && !pack.Deleted {
			packs = append(packs, pack)
		}
	}
	return packs, nil
}

func (f *fakePackRepo) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	packs, _ := f.ListBySeller(ctx, sellerID)
	return int64(len(packs)), nil
}

func (f *fakePackRepo) CountBySellerSince(ctx context.Context, sellerID string, since time.Time) (int64, error) {
	var count int64
	for _, pack := range f.packs {
		if pack.SellerID == sellerID && !pack.Deleted && !pack.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

type fakeProfileRepo struct {
	profiles map[string]*model.Profile
}

func (f *fakeProfileRepo) FindByID(ctx context.Context, profileID string) (*model.Profile, error) {
	profile, ok := f.profiles[profileID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return profile, nil
}

type fakePurchaseRepo struct {
	purchases  map[string]*model.Purchase
	deleteErr  error
	prefErr    error
	priorCount int64
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[string]*model.Purchase)}
}

func (f *fakePurchaseRepo) Create(ctx context.Context, purchase *model.Purchase) error {
	cp := *purchase
	f.purchases[purchase.ID] = &cp
	return nil
}

func (f *fakePurchaseRepo) SetPreferenceID(ctx context.Context, purchaseID, preferenceID string) error {
	if f.prefErr != nil {
		return f.prefErr
	}
	p, ok := f.purchases[purchaseID]
	if !ok {
		return errs.ErrNotFound
	}
	p.PaymentPreferenceID = preferenceID
	return nil
}

func (f *fakePurchaseRepo) Delete(ctx context.Context, purchaseID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.purchases, purchaseID)
	return nil
}

func (f *fakePurchaseRepo) MarkFailed(ctx context.Context, purchaseID string) error {
	if p, ok := f.purchases[purchaseID]; ok {
		p.Status = model.PurchaseStatusFailed
	}
	return nil
}

func (f *fakePurchaseRepo) MarkCompletedByPreference(ctx context.Context, preferenceID string) error {
	for _, p := range f.purchases {
		if p.PaymentPreferenceID == preferenceID && p.Status == model.PurchaseStatusPending {
			p.Status = model.PurchaseStatusCompleted
		}
	}
	return nil
}

func (f *fakePurchaseRepo) CountByBuyer(ctx context.Context, buyerID string) (int64, error) {
	count := f.priorCount
	for _, p := range f.purchases {
		if p.BuyerID == buyerID {
			count++
		}
	}
	return count, nil
}

func (f *fakePurchaseRepo) ListCompletedByPacks(ctx context.Context, packIDs []string) ([]*model.Purchase, error) {
	ids := make(map[string]bool, len(packIDs))
	for _, id := range packIDs {
		ids[id] = true
	}
	var purchases []*model.Purchase
	for _, p := range f.purchases {
		if ids[p.PackID] && p.Status == model.PurchaseStatusCompleted {
			purchases = append(purchases, p)
		}
	}
	return purchases, nil
}

type fakeDiscountCodeRepo struct {
	codes       map[string]*model.DiscountCode // key: packID|CODE
	increments  map[string]int
	forced      map[string]int
	incrementOK bool
}

func newFakeDiscountCodeRepo() *fakeDiscountCodeRepo {
	return &fakeDiscountCodeRepo{
		codes:       make(map[string]*model.DiscountCode),
		increments:  make(map[string]int),
		forced:      make(map[string]int),
		incrementOK: true,
	}
}

func (f *fakeDiscountCodeRepo) add(dc *model.DiscountCode) {
	f.codes[dc.PackID+"|"+strings.ToUpper(dc.Code)] = dc
}

func (f *fakeDiscountCodeRepo) FindByPackAndCode(ctx context.Context, packID, code string) (*model.DiscountCode, error) {
	dc, ok := f.codes[packID+"|"+strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return dc, nil
}

func (f *fakeDiscountCodeRepo) IncrementUsage(ctx context.Context, codeID string) (bool, error) {
	if !f.incrementOK {
		return false, nil
	}
	f.increments[codeID]++
	return true, nil
}

func (f *fakeDiscountCodeRepo) ForceIncrementUsage(ctx context.Context, codeID string) error {
	f.forced[codeID]++
	return nil
}

type fakeFollowRepo struct {
	follows map[string]bool // key: followerID|sellerID
}

func (f *fakeFollowRepo) Exists(ctx context.Context, followerID, sellerID string) (bool, error) {
	return f.follows[followerID+"|"+sellerID], nil
}

type fakePlanPriceRepo struct {
	rows map[string]*model.PlanPrice
	gets int
}

func (f *fakePlanPriceRepo) Seed(ctx context.Context) error {
	return nil
}

func (f *fakePlanPriceRepo) Get(ctx context.Context, tier string) (*model.PlanPrice, error) {
	f.gets++
	row, ok := f.rows[tier]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return row, nil
}

func (f *fakePlanPriceRepo) UpdateCurrentPrice(ctx context.Context, tier string, price int64) (bool, error) {
	row, ok := f.rows[tier]
	if !ok || price > row.BasePrice {
		return false, nil
	}
	row.CurrentPrice = price
	return true, nil
}

type fakePaymentClient struct {
	pref    *client.Preference
	err     error
	calls   int
	lastReq *client.PreferenceRequest
}

func (f *fakePaymentClient) CreatePreference(ctx context.Context, req *client.PreferenceRequest) (*client.Preference, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.pref, nil
}
