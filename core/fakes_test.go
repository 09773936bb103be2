package core

import (
	"context"
	"sync"
)

// fakeAccountRepo is an in-memory AccountRepository for handler tests.
type fakeAccountRepo struct {
	mu                  sync.Mutex
	nextID              int64
	accounts            map[int64]AccountRecord
	updatePasswordCalls int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[int64]AccountRecord{}}
}

func (r *fakeAccountRepo) Create(_ context.Context, firstname, lastname, email, passwordHash string) (AccountRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return AccountRecord{}, ErrDuplicateEmail
		}
	}
	r.nextID++
	account := AccountRecord{
		ID:           r.nextID,
		Firstname:    firstname,
		Lastname:     lastname,
		Email:        email,
		PasswordHash: passwordHash,
		Type:         RoleCustomer,
	}
	r.accounts[account.ID] = account
	return account, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (AccountRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return AccountRecord{}, ErrAccountNotFound
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id int64) (AccountRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		return a, nil
	}
	return AccountRecord{}, ErrAccountNotFound
}

func (r *fakeAccountRepo) UpdateProfile(_ context.Context, firstname, lastname, email string, id int64) (AccountRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return AccountRecord{}, ErrAccountNotFound
	}
	a.Firstname, a.Lastname, a.Email = firstname, lastname, email
	r.accounts[id] = a
	return a, nil
}

func (r *fakeAccountRepo) UpdatePassword(_ context.Context, passwordHash string, id int64) (AccountRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updatePasswordCalls++
	a, ok := r.accounts[id]
	if !ok {
		return AccountRecord{}, ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	r.accounts[id] = a
	return a, nil
}

func (r *fakeAccountRepo) setRole(id int64, role Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.accounts[id]
	a.Type = role
	r.accounts[id] = a
}

func (r *fakeAccountRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

// fakeInventoryRepo is an in-memory InventoryRepository.
type fakeInventoryRepo struct {
	mu                  sync.Mutex
	nextClassID         int64
	nextVehicleID       int64
	classifications     []ClassificationRecord
	vehicles            []VehicleRecord
	classificationCalls int
}

func newFakeInventoryRepo(names ...string) *fakeInventoryRepo {
	r := &fakeInventoryRepo{}
	for _, name := range names {
		r.nextClassID++
		r.classifications = append(r.classifications, ClassificationRecord{ID: r.nextClassID, Name: name})
	}
	return r
}

func (r *fakeInventoryRepo) Classifications(_ context.Context) ([]ClassificationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classificationCalls++
	out := make([]ClassificationRecord, len(r.classifications))
	copy(out, r.classifications)
	return out, nil
}

func (r *fakeInventoryRepo) ClassificationByName(_ context.Context, name string) (ClassificationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.classifications {
		if c.Name == name {
			return c, nil
		}
	}
	return ClassificationRecord{}, ErrClassificationNotFound
}

func (r *fakeInventoryRepo) CreateClassification(_ context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.classifications {
		if c.Name == name {
			return 0, ErrDuplicateClassification
		}
	}
	r.nextClassID++
	r.classifications = append(r.classifications, ClassificationRecord{ID: r.nextClassID, Name: name})
	return r.nextClassID, nil
}

func (r *fakeInventoryRepo) VehiclesByClassification(_ context.Context, classificationID int64) ([]VehicleRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []VehicleRecord
	for _, v := range r.vehicles {
		if v.ClassificationID == classificationID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) VehicleByID(_ context.Context, id int64) (VehicleRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return VehicleRecord{}, ErrVehicleNotFound
}

func (r *fakeInventoryRepo) CreateVehicle(_ context.Context, v VehicleRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextVehicleID++
	v.ID = r.nextVehicleID
	r.vehicles = append(r.vehicles, v)
	return v.ID, nil
}
