package datagen

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dejatori/amaluz-proyecto-betek/internal/model"
)

const (
	fixedAdminCount     = 5
	defaultVendorCount  = 10
	earlyClientCount    = 10
	storeEmailDomain    = "amaluz.com"
	clientBatchMin      = 2
	clientBatchMaxLimit = 7
)

type fixedAdmin struct {
	name      string
	email     string
	gender    model.Gender
	birthDate time.Time
}

var fixedAdmins = []fixedAdmin{
	{"David Toscano", "david_toscano@amaluz.com", model.GenderMale, time.Date(2000, 3, 7, 0, 0, 0, 0, time.UTC)},
	{"Andrea Bernal", "andrea_bernal@amaluz.com", model.GenderFemale, time.Time{}},
	{"Miguel Angel", "miguel_angel@amaluz.com", model.GenderMale, time.Time{}},
	{"Manuela Solis", "manuela_solis@amaluz.com", model.GenderFemale, time.Time{}},
	{"Geraldine Sanchez", "geraldine_sanchez@amaluz.com", model.GenderFemale, time.Time{}},
}

// CreateUsers creates totalCount new users. Existing admins and vendors
// are topped up first (to 5 and 10 respectively), the rest of the count
// becomes clients. Re-running against a populated database only adds
// clients. Returns the users created by this run.
func (s *Seeder) CreateUsers(ctx context.Context, totalCount int) ([]model.User, error) {
	var existing []model.User
	if err := s.db.Select("correo", "telefono", "tipo_usuario").Find(&existing).Error; err != nil {
		return nil, errors.Wrap(err, "load existing users")
	}

	usedEmails := make(map[string]bool, len(existing))
	usedPhones := make(map[string]bool, len(existing))
	existingAdmins, existingVendors := 0, 0
	for _, u := range existing {
		if u.Email != "" {
			usedEmails[u.Email] = true
		}
		if u.Phone != "" {
			usedPhones[u.Phone] = true
		}
		switch u.Role {
		case model.RoleAdmin:
			existingAdmins++
		case model.RoleVendor:
			existingVendors++
		}
	}

	remaining := totalCount
	adminsToCreate := min(max(0, fixedAdminCount-existingAdmins), remaining)
	remaining -= adminsToCreate
	vendorsToCreate := min(max(0, defaultVendorCount-existingVendors), remaining)
	remaining -= vendorsToCreate
	clientsToCreate := remaining

	s.log.Info().
		Int("existing", len(existing)).
		Int("admins", adminsToCreate).
		Int("vendors", vendorsToCreate).
		Int("clients", clientsToCreate).
		Msg("planning user creation")

	staffTotal := adminsToCreate + vendorsToCreate
	var created []model.User

	for i := 0; i < adminsToCreate; i++ {
		u, err := s.buildAdmin(ctx, i, staffTotal, usedEmails, usedPhones)
		if err != nil {
			return created, err
		}
		created = append(created, u)
	}
	for i := 0; i < vendorsToCreate; i++ {
		u, err := s.buildVendor(ctx, adminsToCreate+i, staffTotal, usedEmails, usedPhones)
		if err != nil {
			return created, err
		}
		created = append(created, u)
	}

	if clientsToCreate > 0 {
		clients, err := s.buildClients(ctx, clientsToCreate, usedEmails, usedPhones)
		if err != nil {
			return created, err
		}
		created = append(created, clients...)
	}

	if len(created) == 0 {
		s.log.Info().Msg("no new users to create")
		return nil, nil
	}
	if err := s.db.Create(&created).Error; err != nil {
		return nil, errors.Wrap(err, "insert users")
	}
	s.log.Info().Int("count", len(created)).Msg("users created")
	return created, nil
}

func (s *Seeder) buildAdmin(ctx context.Context, index, staffTotal int, usedEmails, usedPhones map[string]bool) (model.User, error) {
	var (
		name      string
		email     string
		gender    model.Gender
		birthDate time.Time
	)
	if index < len(fixedAdmins) {
		data := fixedAdmins[index]
		name, email, gender = data.name, data.email, data.gender
		birthDate = data.birthDate
		if birthDate.IsZero() {
			birthDate = s.randomBirthDate(25, 40)
		}
		if usedEmails[email] {
			s.log.Warn().Str("email", email).Msg("fixed admin email already in use")
		}
		usedEmails[email] = true
	} else {
		name = randomPersonName(s.rng)
		email = s.uniqueStoreEmail(name, usedEmails)
		gender = s.inferGender(ctx, name)
		birthDate = s.randomBirthDate(25, 50)
	}

	registeredAt, err := SequentialDate(StaffWindowStart, StaffWindowEnd, staffTotal, index)
	if err != nil {
		return model.User{}, errors.Wrap(err, "admin registration date")
	}

	return model.User{
		Name:         name,
		Email:        email,
		Password:     s.hashedPassword(),
		Phone:        s.uniquePhone(usedPhones),
		BirthDate:    birthDate,
		Gender:       gender,
		Role:         model.RoleAdmin,
		State:        model.UserActive,
		RegisteredAt: registeredAt,
		UpdatedAt:    registeredAt,
	}, nil
}

func (s *Seeder) buildVendor(ctx context.Context, index, staffTotal int, usedEmails, usedPhones map[string]bool) (model.User, error) {
	name := randomPersonName(s.rng)
	registeredAt, err := SequentialDate(StaffWindowStart, StaffWindowEnd, staffTotal, index)
	if err != nil {
		return model.User{}, errors.Wrap(err, "vendor registration date")
	}

	return model.User{
		Name:         name,
		Email:        s.uniqueStoreEmail(name, usedEmails),
		Password:     s.hashedPassword(),
		Phone:        s.uniquePhone(usedPhones),
		BirthDate:    s.randomBirthDate(20, 55),
		Gender:       s.inferGender(ctx, name),
		Role:         model.RoleVendor,
		State:        model.UserActive,
		RegisteredAt: registeredAt,
		UpdatedAt:    registeredAt,
	}, nil
}

// clientBatch is a registration wave: size clients spread over
// [start, end].
type clientBatch struct {
	size   int
	start  time.Time
	end    time.Time
	offset int
}

func (s *Seeder) buildClients(ctx context.Context, count int, usedEmails, usedPhones map[string]bool) ([]model.User, error) {
	earlyCount := min(count, earlyClientCount)
	batches := s.planClientBatches(count - earlyCount)

	clients := make([]model.User, 0, count)
	for i := 0; i < count; i++ {
		name := randomPersonName(s.rng)
		email := s.uniqueClientEmail(name, usedEmails)

		var registeredAt time.Time
		var err error
		if i < earlyCount {
			registeredAt, err = SequentialDate(EarlyClientsStart, EarlyClientsEnd, earlyCount, i)
			if err != nil {
				return nil, errors.Wrap(err, "early client registration date")
			}
		} else {
			batchIndex := i - earlyCount
			batch := findBatch(batches, batchIndex)
			registeredAt, err = SequentialDate(batch.start, batch.end, batch.size, batchIndex-batch.offset)
			if err != nil {
				return nil, errors.Wrap(err, "client registration date")
			}
		}

		clients = append(clients, model.User{
			Name:         name,
			Email:        email,
			Password:     s.hashedPassword(),
			Phone:        s.uniquePhone(usedPhones),
			BirthDate:    s.randomBirthDate(18, 80),
			Gender:       s.inferGender(ctx, name),
			Role:         model.RoleClient,
			State:        model.UserUnconfirmed,
			RegisteredAt: registeredAt,
			UpdatedAt:    registeredAt,
		})
	}
	return clients, nil
}

// planClientBatches splits total clients into 2-7 registration waves
// spread over the window after the early-adopter cohort, each wave's
// duration proportional to its size.
func (s *Seeder) planClientBatches(total int) []clientBatch {
	if total <= 0 {
		return nil
	}

	windowStart := EarlyClientsEnd.Add(time.Microsecond)
	windowEnd := UserWindowEnd
	window := windowEnd.Sub(windowStart)

	maxBatches := clientBatchMaxLimit
	switch {
	case total < 20:
		maxBatches = max(1, total/5)
	case total < 50:
		maxBatches = max(1, total/10)
	}
	target := s.intBetween(clientBatchMin, max(clientBatchMin, maxBatches))
	target = min(target, total)

	sizes := s.splitIntoSizes(total, target)

	batches := make([]clientBatch, 0, len(sizes))
	cursor := windowStart
	offset := 0
	for i, size := range sizes {
		var end time.Time
		if i == len(sizes)-1 {
			end = windowEnd
		} else {
			share := time.Duration(float64(window) * float64(size) / float64(total))
			end = minTime(cursor.Add(share), windowEnd)
		}
		if end.Before(cursor) {
			end = cursor.Add(24 * time.Hour)
			end = minTime(end, windowEnd)
		}
		batches = append(batches, clientBatch{size: size, start: cursor, end: end, offset: offset})
		offset += size
		cursor = end.Add(time.Microsecond)
		if cursor.After(windowEnd) {
			cursor = windowEnd
		}
	}
	s.log.Debug().Int("batches", len(batches)).Int("clients", total).Msg("client registration waves planned")
	return batches
}

// splitIntoSizes partitions total into parts random positive sizes.
func (s *Seeder) splitIntoSizes(total, parts int) []int {
	if parts <= 1 || parts >= total {
		if parts >= total {
			sizes := make([]int, total)
			for i := range sizes {
				sizes[i] = 1
			}
			return sizes
		}
		return []int{total}
	}

	cuts := make(map[int]bool, parts-1)
	for len(cuts) < parts-1 {
		cuts[1+s.rng.Intn(total-1)] = true
	}
	points := make([]int, 0, parts+1)
	points = append(points, 0)
	for c := 1; c < total; c++ {
		if cuts[c] {
			points = append(points, c)
		}
	}
	points = append(points, total)

	sizes := make([]int, 0, parts)
	for i := 1; i < len(points); i++ {
		if d := points[i] - points[i-1]; d > 0 {
			sizes = append(sizes, d)
		}
	}
	return sizes
}

func findBatch(batches []clientBatch, index int) clientBatch {
	for i := len(batches) - 1; i >= 0; i-- {
		if index >= batches[i].offset {
			return batches[i]
		}
	}
	return batches[0]
}

// ActivateUsers flips unconfirmed clients to active, leaving
// leaveUnconfirmed of them untouched. Most users confirm within
// minutes of registering; a minority takes a day or two.
func (s *Seeder) ActivateUsers(leaveUnconfirmed int) error {
	var pending []model.User
	if err := s.db.Where("estado = ?", model.UserUnconfirmed).Find(&pending).Error; err != nil {
		return errors.Wrap(err, "load unconfirmed users")
	}
	if len(pending) == 0 {
		s.log.Info().Msg("no unconfirmed users to activate")
		return nil
	}
	if len(pending) <= leaveUnconfirmed {
		s.log.Info().Int("pending", len(pending)).Int("leave", leaveUnconfirmed).
			Msg("unconfirmed count at or below target, nothing to do")
		return nil
	}

	s.rng.Shuffle(len(pending), func(i, j int) {
		pending[i], pending[j] = pending[j], pending[i]
	})

	activated := 0
	for _, u := range pending[leaveUnconfirmed:] {
		var confirmedAt time.Time
		if s.rng.Float64() < 0.8 {
			confirmedAt = u.RegisteredAt.Add(time.Duration(s.intBetween(2, 10)) * time.Minute)
		} else {
			confirmedAt = u.RegisteredAt.
				Add(time.Duration(s.intBetween(1, 2)) * 24 * time.Hour).
				Add(time.Duration(s.intBetween(0, 59)) * time.Minute)
		}
		err := s.db.Model(&model.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
			"estado":              model.UserActive,
			"fecha_actualizacion": confirmedAt,
		}).Error
		if err != nil {
			return errors.Wrapf(err, "activate user %d", u.ID)
		}
		activated++
	}
	s.log.Info().Int("activated", activated).Int("left_unconfirmed", leaveUnconfirmed).Msg("users activated")
	return nil
}

// ActiveClients returns active users with the client role.
func (s *Seeder) ActiveClients() ([]model.User, error) {
	var clients []model.User
	err := s.db.
		Where("estado = ? AND tipo_usuario = ?", model.UserActive, model.RoleClient).
		Find(&clients).Error
	if err != nil {
		return nil, errors.Wrap(err, "load active clients")
	}
	return clients, nil
}

func (s *Seeder) inferGender(ctx context.Context, fullName string) model.Gender {
	firstName := fullName
	for i, r := range fullName {
		if r == ' ' {
			firstName = fullName[:i]
			break
		}
	}
	result, err := s.text.InferGender(ctx, firstName)
	if err != nil {
		s.log.Debug().Err(err).Str("name", firstName).Msg("gender inference failed, picking randomly")
		return model.Genders[s.rng.Intn(len(model.Genders))]
	}
	switch model.Gender(result) {
	case model.GenderMale, model.GenderFemale, model.GenderOther:
		return model.Gender(result)
	}
	return model.Genders[s.rng.Intn(len(model.Genders))]
}

func (s *Seeder) uniqueStoreEmail(name string, used map[string]bool) string {
	base := SanitizeForEmail(name)
	email := base + "@" + storeEmailDomain
	for attempt := 1; used[email]; attempt++ {
		email = fmt.Sprintf("%s%d@%s", base, attempt, storeEmailDomain)
	}
	used[email] = true
	return email
}

func (s *Seeder) uniqueClientEmail(name string, used map[string]bool) string {
	base := SanitizeForEmail(name)
	domain := FreeEmailDomains[s.rng.Intn(len(FreeEmailDomains))]
	email := base + "@" + domain
	for attempt := 1; used[email]; attempt++ {
		email = fmt.Sprintf("%s%d@%s", base, attempt, domain)
	}
	used[email] = true
	return email
}

func (s *Seeder) uniquePhone(used map[string]bool) string {
	for {
		phone := randomColombianMobile(s.rng)
		if !used[phone] {
			used[phone] = true
			return phone
		}
	}
}

func (s *Seeder) hashedPassword() string {
	hash, err := bcrypt.GenerateFromPassword([]byte(faker.Password()), bcrypt.DefaultCost)
	if err != nil {
		s.log.Warn().Err(err).Msg("bcrypt failed, storing placeholder hash")
		return ""
	}
	return string(hash)
}

func (s *Seeder) randomBirthDate(minAge, maxAge int) time.Time {
	years := s.intBetween(minAge, maxAge)
	days := s.rng.Intn(365)
	return SimulationStart.AddDate(-years, 0, -days)
}
