package service

import (
	"errors"

	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"gorm.io/gorm"
)

var (
	ErrBannerNotFound = errors.New("banner not found")
	ErrBannerInvalid  = errors.New("banner title and image are required")
)

type BannerInput struct {
	Title    string
	Subtitle string
	ImageURL string
	LinkURL  string
	Position int
	Active   bool
}

type BannerService interface {
	ListBanners() ([]model.Banner, error)
	ListActiveBanners() ([]model.Banner, error)
	CreateBanner(in BannerInput) (*model.Banner, error)
	UpdateBanner(id uint, in BannerInput) (*model.Banner, error)
	DeleteBanner(id uint) error
}

type bannerService struct {
	bannerRepo repository.BannerRepository
}

func NewBannerService(bannerRepo repository.BannerRepository) BannerService {
	return &bannerService{bannerRepo: bannerRepo}
}

func (s *bannerService) ListBanners() ([]model.Banner, error) {
	return s.bannerRepo.FindAll()
}

func (s *bannerService) ListActiveBanners() ([]model.Banner, error) {
	return s.bannerRepo.FindActive()
}

func (s *bannerService) CreateBanner(in BannerInput) (*model.Banner, error) {
	if in.Title == "" || in.ImageURL == "" {
		return nil, ErrBannerInvalid
	}

	banner := &model.Banner{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		ImageURL: in.ImageURL,
		LinkURL:  in.LinkURL,
		Position: in.Position,
		Active:   in.Active,
	}
	if err := s.bannerRepo.Create(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *bannerService) UpdateBanner(id uint, in BannerInput) (*model.Banner, error) {
	banner, err := s.bannerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBannerNotFound
		}
		return nil, err
	}
	if in.Title == "" || in.ImageURL == "" {
		return nil, ErrBannerInvalid
	}

	banner.Title = in.Title
	banner.Subtitle = in.Subtitle
	banner.ImageURL = in.ImageURL
	banner.LinkURL = in.LinkURL
	banner.Position = in.Position
	banner.Active = in.Active
	if err := s.bannerRepo.Update(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *bannerService) DeleteBanner(id uint) error {
	if _, err := s.bannerRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBannerNotFound
		}
		return err
	}
	return s.bannerRepo.Delete(id)
}
