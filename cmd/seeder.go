package cmd

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	catalogDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/catalog"
	partnerDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/partner"
	pricelistDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/pricelist"
	rbacDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/rbac"
	tenantDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/tenant"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
	"github.com/netfibra/backoffice/internal/rbac"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a master user, a demo tenant and catalog samples for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		_, gormDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			clearTables(gormDB)
		}

		seedMasterUser(gormDB)
		tenantID := seedDemoTenant(gormDB)
		seedCatalog(gormDB)
		seedScreenPermissions(gormDB)
		seedDemoPartnerAndLPU(gormDB, tenantID)

		fmt.Println("Seeding complete")
	},
}

func clearTables(db *gorm.DB) {
	// children first
	for _, table := range []string{"lpu_itens", "lpus", "partner_profiles", "screen_permissions", "materiais", "servicos", "classes", "unidades"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func seedMasterUser(db *gorm.DB) {
	email := "master@netfibra.com"
	var count int64
	db.Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		fmt.Println("master user already exists:", email)
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("master-password"), bcrypt.DefaultCost)
	master := &userDatamodel.User{
		Email:        email,
		Name:         "Master",
		PasswordHash: string(hash),
		Role:         userDatamodel.RoleMaster,
		Status:       userDatamodel.StatusApproved,
		IsActive:     true,
	}
	if err := db.Create(master).Error; err != nil {
		log.Fatalf("failed to seed master user: %v", err)
	}
	fmt.Println("Seeded master user:", email)
}

func seedDemoTenant(db *gorm.DB) (id string) {
	name := "NetFibra Demo"
	var existing tenantDatamodel.Tenant
	if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
		return existing.ID.String()
	}

	t := &tenantDatamodel.Tenant{Name: name, Status: tenantDatamodel.StatusActive}
	if err := db.Create(t).Error; err != nil {
		log.Fatalf("failed to seed tenant: %v", err)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.DefaultCost)
	admin := &userDatamodel.User{
		Email:        "admin@netfibra.com",
		Name:         "Demo Admin",
		PasswordHash: string(hash),
		Role:         userDatamodel.RoleAdmin,
		Status:       userDatamodel.StatusApproved,
		TenantID:     &t.ID,
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	fmt.Println("Seeded tenant:", name)
	return t.ID.String()
}

func seedCatalog(db *gorm.DB) {
	var count int64
	db.Model(&catalogDatamodel.Classe{}).Count(&count)
	if count > 0 {
		fmt.Println("catalog already seeded")
		return
	}

	classes := []*catalogDatamodel.Classe{
		{Nome: "Civil", Ativa: true},
		{Nome: "Elétrica", Ativa: true},
		{Nome: "Rede Óptica", Ativa: true},
	}
	for _, c := range classes {
		if err := db.Create(c).Error; err != nil {
			log.Fatalf("failed to seed classe %s: %v", c.Nome, err)
		}
	}

	unidades := []*catalogDatamodel.Unidade{
		{Nome: "Metro", Sigla: "m", Ativa: true},
		{Nome: "Hora", Sigla: "h", Ativa: true},
		{Nome: "Unidade", Sigla: "un", Ativa: true},
	}
	for _, u := range unidades {
		if err := db.Create(u).Error; err != nil {
			log.Fatalf("failed to seed unidade %s: %v", u.Sigla, err)
		}
	}

	servicos := []*catalogDatamodel.Servico{
		{Codigo: "SRV-001", Atividade: "Lançamento de cabo óptico", ClasseID: classes[2].ID, UnidadeID: unidades[0].ID, Ativo: true},
		{Codigo: "SRV-002", Atividade: "Fusão de fibra", ClasseID: classes[2].ID, UnidadeID: unidades[2].ID, Ativo: true},
		{Codigo: "SRV-003", Atividade: "Escavação de vala", ClasseID: classes[0].ID, UnidadeID: unidades[0].ID, Ativo: true},
		{Codigo: "SRV-004", Atividade: "Instalação elétrica de POP", ClasseID: classes[1].ID, UnidadeID: unidades[1].ID, Ativo: true},
	}
	for _, s := range servicos {
		if err := db.Create(s).Error; err != nil {
			log.Fatalf("failed to seed servico %s: %v", s.Codigo, err)
		}
	}

	fmt.Println("Seeded catalog samples")
}

// seedScreenPermissions materializes the in-code defaults as rows so the
// matrix can be edited from the admin screens right away.
func seedScreenPermissions(db *gorm.DB) {
	var count int64
	db.Model(&rbacDatamodel.ScreenPermission{}).Count(&count)
	if count > 0 {
		fmt.Println("screen permissions already seeded")
		return
	}

	for _, role := range userDatamodel.AllRoles() {
		if role == userDatamodel.RoleMaster {
			// MASTER bypasses the matrix; nothing to store
			continue
		}
		for _, def := range rbac.Screens {
			actions, ok := def.Defaults[role]
			if !ok {
				continue
			}
			row := &rbacDatamodel.ScreenPermission{
				Role:      role,
				ScreenKey: def.Key,
				CanView:   actions.View,
				CanCreate: actions.Create,
				CanEdit:   actions.Edit,
				CanDelete: actions.Delete,
			}
			if err := db.Create(row).Error; err != nil {
				log.Fatalf("failed to seed screen permission %s/%s: %v", role, def.Key, err)
			}
		}
	}
	fmt.Println("Seeded screen permission matrix")
}

func seedDemoPartnerAndLPU(db *gorm.DB, tenantIDStr string) {
	var count int64
	db.Model(&pricelistDatamodel.LPU{}).Count(&count)
	if count > 0 {
		fmt.Println("price lists already seeded")
		return
	}

	var tenant tenantDatamodel.Tenant
	if err := db.Where("id = ?", tenantIDStr).First(&tenant).Error; err != nil {
		log.Fatalf("seed tenant not found: %v", err)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("partner-password"), bcrypt.DefaultCost)
	partnerUser := &userDatamodel.User{
		Email:        "parceiro@netfibra.com",
		Name:         "Parceiro Demo",
		PasswordHash: string(hash),
		Role:         userDatamodel.RolePartner,
		Status:       userDatamodel.StatusApproved,
		TenantID:     &tenant.ID,
		IsActive:     true,
	}
	if err := db.Create(partnerUser).Error; err != nil {
		log.Fatalf("failed to seed partner user: %v", err)
	}

	personType := "PJ"
	document := "12.345.678/0001-00"
	profile := &partnerDatamodel.PartnerProfile{
		UserID:     partnerUser.ID,
		TenantID:   tenant.ID,
		PersonType: &personType,
		Document:   &document,
	}
	if err := db.Create(profile).Error; err != nil {
		log.Fatalf("failed to seed partner profile: %v", err)
	}

	lpu := &pricelistDatamodel.LPU{
		Nome:       "LPU Padrão 2026",
		ParceiroID: profile.ID,
		TenantID:   tenant.ID,
		Ativa:      true,
	}
	if err := db.Create(lpu).Error; err != nil {
		log.Fatalf("failed to seed lpu: %v", err)
	}

	var servicos []catalogDatamodel.Servico
	if err := db.Order("codigo ASC").Limit(2).Find(&servicos).Error; err != nil {
		log.Fatalf("failed to load servicos for lpu: %v", err)
	}
	prices := []string{"12.50", "85.00"}
	for i, s := range servicos {
		valor, _ := decimal.NewFromString(prices[i%len(prices)])
		item := &pricelistDatamodel.LPUItem{
			LPUID:         lpu.ID,
			ServicoID:     s.ID,
			ValorUnitario: valor,
		}
		if err := db.Create(item).Error; err != nil {
			log.Fatalf("failed to seed lpu item: %v", err)
		}
	}

	fmt.Println("Seeded demo partner and price list")
}
