package persistence

import (
	"context"
	"fmt"

	"github.com/devicedesk/backend/internal/domain/asset"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedDevice struct {
	Type        string
	Description string
}

var seedDevices = []seedDevice{
	{"Smartphone", "A mobile phone with advanced features, often including internet access and app capabilities."},
	{"Laptop", "A portable computer designed for various uses, including work and entertainment."},
	{"Tablet", "A handheld computer with a touchscreen interface, typically larger than a smartphone."},
	{"Desktop Computer", "A personal computer designed for use at a single location, such as a desk or table."},
	{"Smartwatch", "A wearable device that offers various functionalities, including fitness tracking and notifications."},
	{"Camera", "A device used for capturing photographs or videos."},
	{"Headphones", "An audio accessory worn over the ears for listening to music or other audio content."},
	{"Gaming Console", "A specialized device for playing video games on a TV or monitor."},
	{"Router", "A networking device used to connect multiple devices to the internet or a local network."},
	{"Printer", "A device for producing physical copies of digital documents or images."},
	{"Fitness Tracker", "A wearable device designed to monitor fitness-related metrics, such as steps and heart rate."},
	{"VR Headset", "A device that provides a virtual reality experience, often used for gaming and simulations."},
}

type seedEmployee struct {
	Name    string
	Email   string
	Devices []int // positions in seedDevices
}

var seedEmployees = []seedEmployee{
	{"Paul Walker", "paul@gmail.com", []int{0, 1, 2}},
	{"Chris Evans", "chris@gmail.com", []int{2, 3, 4}},
}

// Seed loads the demo devices, employees and assignments into an empty
// database. It does nothing once any device row exists.
func Seed(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&asset.Device{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count devices: %w", err)
	}
	if count > 0 {
		log.Info("Seed skipped, database is not empty", zap.Int64("devices", count))
		return nil
	}

	uow := NewGormUnitOfWork(db, WithUnitOfWorkLogger(log))
	uow.SetAutoDetectChanges(false)
	if err := uow.BeginTransaction(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback() }()

	devices := make([]*asset.Device, 0, len(seedDevices))
	employees := make([]*asset.Employee, 0, len(seedEmployees))
	for _, d := range seedDevices {
		device, err := asset.NewDevice(d.Type, d.Description)
		if err != nil {
			return err
		}
		devices = append(devices, device)
		uow.Add(device)
	}
	for _, e := range seedEmployees {
		employee, err := asset.NewEmployee(e.Name, e.Email)
		if err != nil {
			return err
		}
		employees = append(employees, employee)
		uow.Add(employee)
	}
	if _, err := uow.Save(ctx); err != nil {
		return fmt.Errorf("seed devices and employees: %w", err)
	}

	links := 0
	for i, e := range seedEmployees {
		for _, pos := range e.Devices {
			uow.Add(asset.NewEmployeeDevice(employees[i].ID, devices[pos].ID))
			links++
		}
	}
	if _, err := uow.Save(ctx); err != nil {
		return fmt.Errorf("seed assignments: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	log.Info("Seed data loaded",
		zap.Int("devices", len(devices)),
		zap.Int("employees", len(employees)),
		zap.Int("assignments", links),
	)
	return nil
}
