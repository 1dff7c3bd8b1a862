package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/phone_inventory/internal/models"
	"github.com/phone_inventory/internal/repositories"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrCustomerNameRequired 表示必须提供客户名
var ErrCustomerNameRequired = errors.New("必须提供客户名")

// CustomerService 定义了客户视图服务的接口。
// 客户不是存储实体，全部数据在每次调用时从号码表和历史表重新推导。
type CustomerService interface {
	// ListCustomers 返回全部客户（当前持有号码的与仅在历史中出现的），
	// 同一客户只出现一次，当前持有者优先
	ListCustomers() ([]models.CustomerSummary, error)
	// CustomerPhones 返回某客户当前及曾经持有的号码，按号码身份去重
	CustomerPhones(clientName string) ([]models.CustomerPhone, error)
}

// customerService 是 CustomerService 的实现
type customerService struct {
	repo     repositories.PhoneNumberRepository
	collator *collate.Collator
}

// NewCustomerService 创建一个新的 customerService 实例
func NewCustomerService(repo repositories.PhoneNumberRepository) CustomerService {
	return &customerService{
		repo:     repo,
		collator: collate.New(language.Und, collate.IgnoreCase),
	}
}

// ListCustomers 合并当前客户与历史客户两个分组结果。
// 同名客户以当前持有分支为准：活跃客户的号码数只反映当前分配，
// 不并入其历史记录数。
func (s *customerService) ListCustomers() ([]models.CustomerSummary, error) {
	current, err := s.repo.CurrentClients()
	if err != nil {
		return nil, err
	}
	historical, err := s.repo.HistoricalClients()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(current))
	customers := make([]models.CustomerSummary, 0, len(current)+len(historical))
	for _, c := range current {
		seen[c.ClientName] = struct{}{}
		customers = append(customers, c)
	}
	for _, c := range historical {
		if _, ok := seen[c.ClientName]; ok {
			continue
		}
		customers = append(customers, c)
	}

	sort.Slice(customers, func(i, j int) bool {
		return s.collator.CompareString(customers[i].ClientName, customers[j].ClientName) < 0
	})
	return customers, nil
}

// CustomerPhones 返回某客户名下（当前或曾经）的号码。
// 去重键是号码的主键：当前持有的号码优先；同一号码出现在多条
// 历史记录中时只保留最近一次事件（查询按时间倒序）。
func (s *customerService) CustomerPhones(clientName string) ([]models.CustomerPhone, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return nil, ErrCustomerNameRequired
	}

	currentPhones, err := s.repo.CurrentPhonesByClient(clientName)
	if err != nil {
		return nil, err
	}
	historyRows, err := s.repo.HistoricalPhonesByClient(clientName)
	if err != nil {
		return nil, err
	}

	phones := make([]models.CustomerPhone, 0, len(currentPhones)+len(historyRows))
	seen := make(map[string]struct{}, len(currentPhones))

	for _, p := range currentPhones {
		seen[p.ID] = struct{}{}
		phones = append(phones, models.CustomerPhone{
			ID:            p.ID,
			Number:        p.Number,
			CurrentStatus: p.CurrentStatus,
			CurrentClient: p.CurrentClient,
			IsActive:      true,
		})
	}

	for _, row := range historyRows {
		if _, ok := seen[row.PhoneID]; ok {
			continue
		}
		seen[row.PhoneID] = struct{}{}
		returnDate := row.EventDate
		phones = append(phones, models.CustomerPhone{
			ID:            row.PhoneID,
			Number:        row.Number,
			CurrentStatus: models.StatusFree,
			IsActive:      false,
			ReturnDate:    &returnDate,
		})
	}

	return phones, nil
}
