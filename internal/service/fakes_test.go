package service

import (
	"context"
	"sync"

	"github.com/foc-sab/ctrlroom/internal/dto"
	"github.com/foc-sab/ctrlroom/internal/model"
	"github.com/foc-sab/ctrlroom/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes so the services can be exercised without a
// database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*model.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]uuid.UUID // token id -> user id
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[uuid.UUID]uuid.UUID)}
}

func (r *fakeTokenRepo) Create(ctx context.Context, token *model.AuthToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	r.tokens[token.ID] = token.UserID
	return nil
}

func (r *fakeTokenRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tokens[id]
	return ok, nil
}

func (r *fakeTokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, id)
	return nil
}

func (r *fakeTokenRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, owner := range r.tokens {
		if owner == userID {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *fakeTokenRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

type fakeResetRepo struct {
	mu     sync.Mutex
	resets map[string]*model.PasswordReset
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{resets: make(map[string]*model.PasswordReset)}
}

func (r *fakeResetRepo) Upsert(ctx context.Context, reset *model.PasswordReset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *reset
	r.resets[reset.Email] = &copied
	return nil
}

func (r *fakeResetRepo) FindByEmail(ctx context.Context, email string) (*model.PasswordReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reset, ok := r.resets[email]; ok {
		copied := *reset
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeResetRepo) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.resets, email)
	return nil
}

type fakeMailer struct {
	mu           sync.Mutex
	resetTokens  map[string]string // email -> last plaintext token mailed
	genericSends []string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{resetTokens: make(map[string]string)}
}

func (m *fakeMailer) SendPasswordReset(email, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetTokens[email] = token
	return nil
}

func (m *fakeMailer) SendPasswordResetGeneric(email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.genericSends = append(m.genericSends, email)
	return nil
}

func (m *fakeMailer) lastToken(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resetTokens[email]
}

type fakeComputerRepo struct {
	mu         sync.Mutex
	nextID     uint
	computers  map[uint]*model.Computer
	complaints map[uint]*model.Complaint
	nextCompID uint

	lastPage    int
	lastPerPage int
}

func newFakeComputerRepo() *fakeComputerRepo {
	return &fakeComputerRepo{
		nextID:     1,
		nextCompID: 1,
		computers:  make(map[uint]*model.Computer),
		complaints: make(map[uint]*model.Complaint),
	}
}

func (r *fakeComputerRepo) FindAll(ctx context.Context, filter dto.ComputerFilter, page, perPage int) ([]model.Computer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPage = page
	r.lastPerPage = perPage

	var matched []model.Computer
	for _, computer := range r.computers {
		if filter.SystemStatus != "" && computer.SystemStatus != filter.SystemStatus {
			continue
		}
		matched = append(matched, *computer)
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeComputerRepo) FindByID(ctx context.Context, id uint, withAssociations bool) (*model.Computer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	computer, ok := r.computers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *computer
	if withAssociations {
		copied.Complaints = r.complaintsForLocked(id)
	}
	return &copied, nil
}

func (r *fakeComputerRepo) FindByStatus(ctx context.Context, status string) ([]model.Computer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []model.Computer
	for _, computer := range r.computers {
		if computer.SystemStatus == status {
			matched = append(matched, *computer)
		}
	}
	return matched, nil
}

func (r *fakeComputerRepo) Exists(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.computers[id]
	return ok, nil
}

func (r *fakeComputerRepo) Create(ctx context.Context, computer *model.Computer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	computer.ID = r.nextID
	r.nextID++
	for i := range computer.Complaints {
		computer.Complaints[i].ID = r.nextCompID
		computer.Complaints[i].ComputerID = computer.ID
		copied := computer.Complaints[i]
		r.complaints[r.nextCompID] = &copied
		r.nextCompID++
	}
	copied := *computer
	copied.Complaints = nil
	r.computers[computer.ID] = &copied
	return nil
}

func (r *fakeComputerRepo) Update(ctx context.Context, computer *model.Computer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *computer
	copied.Complaints = nil
	r.computers[computer.ID] = &copied
	return nil
}

func (r *fakeComputerRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.computers, id)
	for compID, complaint := range r.complaints {
		if complaint.ComputerID == id {
			delete(r.complaints, compID)
		}
	}
	return nil
}

func (r *fakeComputerRepo) AssetTagTaken(ctx context.Context, assetTag string, excludeID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, computer := range r.computers {
		if computer.ID == excludeID {
			continue
		}
		if computer.AssetTag != nil && *computer.AssetTag == assetTag {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeComputerRepo) ReplaceComplaints(ctx context.Context, computerID uint, texts []string) ([]model.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, complaint := range r.complaints {
		if complaint.ComputerID == computerID {
			delete(r.complaints, id)
		}
	}
	replaced := make([]model.Complaint, 0, len(texts))
	for _, text := range texts {
		complaint := model.Complaint{
			ID:         r.nextCompID,
			ComputerID: computerID,
			Text:       text,
			Status:     model.ComplaintOpen,
		}
		r.complaints[complaint.ID] = &complaint
		r.nextCompID++
		replaced = append(replaced, complaint)
	}
	return replaced, nil
}

func (r *fakeComputerRepo) AddComplaint(ctx context.Context, complaint *model.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint.ID = r.nextCompID
	r.nextCompID++
	copied := *complaint
	r.complaints[complaint.ID] = &copied
	return nil
}

func (r *fakeComputerRepo) FindComplaint(ctx context.Context, computerID, complaintID uint) (*model.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.complaints[complaintID]
	if !ok || complaint.ComputerID != computerID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *complaint
	return &copied, nil
}

func (r *fakeComputerRepo) UpdateComplaint(ctx context.Context, complaint *model.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *complaint
	r.complaints[complaint.ID] = &copied
	return nil
}

func (r *fakeComputerRepo) DeleteComplaint(ctx context.Context, computerID, complaintID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if complaint, ok := r.complaints[complaintID]; ok && complaint.ComputerID == computerID {
		delete(r.complaints, complaintID)
	}
	return nil
}

func (r *fakeComputerRepo) Stats(ctx context.Context) (*repository.ComputerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repository.ComputerStats{}
	withComplaints := make(map[uint]bool)
	for _, computer := range r.computers {
		stats.Total++
		switch computer.SystemStatus {
		case model.StatusAvailable:
			stats.Available++
		case model.StatusUnderMaintenance:
			stats.UnderMaintenance++
		}
	}
	for _, complaint := range r.complaints {
		if complaint.Status == model.ComplaintOpen {
			withComplaints[complaint.ComputerID] = true
		}
	}
	stats.WithComplaints = int64(len(withComplaints))
	return stats, nil
}

func (r *fakeComputerRepo) complaintsForLocked(computerID uint) []model.Complaint {
	var complaints []model.Complaint
	for _, complaint := range r.complaints {
		if complaint.ComputerID == computerID {
			complaints = append(complaints, *complaint)
		}
	}
	return complaints
}

func (r *fakeComputerRepo) complaintCount(computerID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.complaintsForLocked(computerID))
}

type fakeSoftwareRepo struct {
	mu       sync.Mutex
	nextID   uint
	software map[uint]*model.Software
}

func newFakeSoftwareRepo() *fakeSoftwareRepo {
	return &fakeSoftwareRepo{nextID: 1, software: make(map[uint]*model.Software)}
}

func (r *fakeSoftwareRepo) FindAllByComputer(ctx context.Context, computerID uint, filter dto.SoftwareFilter) ([]model.Software, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []model.Software
	for _, software := range r.software {
		if software.ComputerID != computerID {
			continue
		}
		if filter.Category != "" && (software.Category == nil || *software.Category != filter.Category) {
			continue
		}
		matched = append(matched, *software)
	}
	return matched, nil
}

func (r *fakeSoftwareRepo) FindByID(ctx context.Context, computerID, softwareID uint) (*model.Software, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	software, ok := r.software[softwareID]
	if !ok || software.ComputerID != computerID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *software
	return &copied, nil
}

func (r *fakeSoftwareRepo) Create(ctx context.Context, software *model.Software) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	software.ID = r.nextID
	r.nextID++
	copied := *software
	r.software[software.ID] = &copied
	return nil
}

func (r *fakeSoftwareRepo) Update(ctx context.Context, software *model.Software) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *software
	r.software[software.ID] = &copied
	return nil
}

func (r *fakeSoftwareRepo) Delete(ctx context.Context, computerID, softwareID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if software, ok := r.software[softwareID]; ok && software.ComputerID == computerID {
		delete(r.software, softwareID)
	}
	return nil
}

func (r *fakeSoftwareRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	var categories []string
	for _, software := range r.software {
		if software.Category != nil && *software.Category != "" && !seen[*software.Category] {
			seen[*software.Category] = true
			categories = append(categories, *software.Category)
		}
	}
	return categories, nil
}
