package postgres_test

import (
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	catalogDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/catalog"
	partnerDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/partner"
	pricelistDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/pricelist"
	"github.com/netfibra/backoffice/internal/pricelist"
	pricelistPostgres "github.com/netfibra/backoffice/internal/pricelist/postgres"
)

func TestPriceListPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "PriceList Postgres Suite")
}

var _ = Describe("PriceList PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo pricelist.RepositoryAPI

		tenantID uuid.UUID
		partner  *partnerDatamodel.PartnerProfile
		servico  *catalogDatamodel.Servico
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&catalogDatamodel.Classe{},
			&catalogDatamodel.Unidade{},
			&catalogDatamodel.Servico{},
			&partnerDatamodel.PartnerProfile{},
			&pricelistDatamodel.LPU{},
			&pricelistDatamodel.LPUItem{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = pricelistPostgres.NewPriceListRepository(db)

		tenantID = uuid.New()
		partner = &partnerDatamodel.PartnerProfile{UserID: uuid.New(), TenantID: tenantID}
		Expect(db.Create(partner).Error).To(Succeed())

		classe := &catalogDatamodel.Classe{Nome: "Fibra Optica", Ativa: true}
		Expect(db.Create(classe).Error).To(Succeed())
		unidade := &catalogDatamodel.Unidade{Nome: "Metro", Sigla: "m", Ativa: true}
		Expect(db.Create(unidade).Error).To(Succeed())
		servico = &catalogDatamodel.Servico{
			Codigo:    "SRV-001",
			Atividade: "Lancamento de cabo",
			ClasseID:  classe.ID,
			UnidadeID: unidade.ID,
			Ativo:     true,
		}
		Expect(db.Create(servico).Error).To(Succeed())
	})

	newLPU := func(nome string) *pricelistDatamodel.LPU {
		lpu := &pricelistDatamodel.LPU{
			Nome:       nome,
			ParceiroID: partner.ID,
			TenantID:   tenantID,
			Ativa:      true,
		}
		Expect(repo.CreateLPU(lpu)).To(Succeed())
		return lpu
	}

	Describe("LPU", func() {
		It("should create a price list and assign an id", func() {
			lpu := newLPU("LPU Regiao Sul")
			Expect(lpu.ID).NotTo(Equal(uuid.Nil))
			Expect(lpu.CreatedAt).NotTo(BeZero())
		})

		It("should scope listings to the tenant", func() {
			newLPU("LPU Regiao Sul")

			foreign := &pricelistDatamodel.LPU{
				Nome:       "LPU de outro tenant",
				ParceiroID: uuid.New(),
				TenantID:   uuid.New(),
				Ativa:      true,
			}
			Expect(repo.CreateLPU(foreign)).To(Succeed())

			lpus, total, err := repo.ListLPUs(tenantID, nil, nil, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(lpus[0].Nome).To(Equal("LPU Regiao Sul"))
		})

		It("should filter by parceiro and ativa", func() {
			newLPU("LPU Ativa")
			inativa := newLPU("LPU Inativa")
			inativa.Ativa = false
			Expect(repo.UpdateLPU(inativa)).To(Succeed())

			ativa := true
			lpus, total, err := repo.ListLPUs(tenantID, &partner.ID, &ativa, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(lpus[0].Nome).To(Equal("LPU Ativa"))
		})

		It("should preload items on read", func() {
			lpu := newLPU("LPU Regiao Sul")
			Expect(repo.CreateItem(&pricelistDatamodel.LPUItem{
				LPUID:         lpu.ID,
				ServicoID:     servico.ID,
				ValorUnitario: decimal.NewFromFloat(12.50),
			})).To(Succeed())

			result, err := repo.GetLPUByID(lpu.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Itens).To(HaveLen(1))
			Expect(result.Itens[0].Servico).NotTo(BeNil())
			Expect(result.Itens[0].Servico.Codigo).To(Equal("SRV-001"))
		})

		It("should return nil for an unknown id", func() {
			result, err := repo.GetLPUByID(uuid.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())
		})

		It("should delete the list together with its items", func() {
			lpu := newLPU("LPU Regiao Sul")
			Expect(repo.CreateItem(&pricelistDatamodel.LPUItem{
				LPUID:         lpu.ID,
				ServicoID:     servico.ID,
				ValorUnitario: decimal.NewFromFloat(12.50),
			})).To(Succeed())

			Expect(repo.DeleteLPU(lpu.ID)).To(Succeed())

			result, err := repo.GetLPUByID(lpu.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(BeNil())

			var count int64
			Expect(db.Model(&pricelistDatamodel.LPUItem{}).Where("lpu_id = ?", lpu.ID).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})
	})

	Describe("Items", func() {
		var lpu *pricelistDatamodel.LPU

		BeforeEach(func() {
			lpu = newLPU("LPU Regiao Sul")
		})

		It("should enforce the unique (lpu_id, servico_id) pair", func() {
			Expect(repo.CreateItem(&pricelistDatamodel.LPUItem{
				LPUID:         lpu.ID,
				ServicoID:     servico.ID,
				ValorUnitario: decimal.NewFromFloat(10),
			})).To(Succeed())

			err := repo.CreateItem(&pricelistDatamodel.LPUItem{
				LPUID:         lpu.ID,
				ServicoID:     servico.ID,
				ValorUnitario: decimal.NewFromFloat(20),
			})
			Expect(err).To(HaveOccurred())
		})

		It("should allow the same servico on another list", func() {
			other := newLPU("LPU Regiao Norte")

			Expect(repo.CreateItem(&pricelistDatamodel.LPUItem{
				LPUID:         lpu.ID,
				ServicoID:     servico.ID,
				ValorUnitario: decimal.NewFromFloat(10),
			})).To(Succeed())
			Expect(repo.CreateItem(&pricelistDatamodel.LPUItem{
				LPUID:         other.ID,
				ServicoID:     servico.ID,
				ValorUnitario: decimal.NewFromFloat(22.75),
			})).To(Succeed())
		})

		It("should find an item by list and servico", func() {
			Expect(repo.CreateItem(&pricelistDatamodel.LPUItem{
				LPUID:         lpu.ID,
				ServicoID:     servico.ID,
				ValorUnitario: decimal.NewFromFloat(10),
			})).To(Succeed())

			item, err := repo.GetItemByLPUAndServico(lpu.ID, servico.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(item).NotTo(BeNil())

			missing, err := repo.GetItemByLPUAndServico(lpu.ID, uuid.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(missing).To(BeNil())
		})

		It("should round-trip decimal prices", func() {
			valorClasse := decimal.NewFromFloat(5.25)
			item := &pricelistDatamodel.LPUItem{
				LPUID:         lpu.ID,
				ServicoID:     servico.ID,
				ValorUnitario: decimal.NewFromFloat(1234.56),
				ValorClasse:   &valorClasse,
			}
			Expect(repo.CreateItem(item)).To(Succeed())

			result, err := repo.GetItemByID(item.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.ValorUnitario.Equal(decimal.NewFromFloat(1234.56))).To(BeTrue())
			Expect(result.ValorClasse).NotTo(BeNil())
			Expect(result.ValorClasse.Equal(decimal.NewFromFloat(5.25))).To(BeTrue())
		})

		It("should update item prices", func() {
			item := &pricelistDatamodel.LPUItem{
				LPUID:         lpu.ID,
				ServicoID:     servico.ID,
				ValorUnitario: decimal.NewFromFloat(10),
			}
			Expect(repo.CreateItem(item)).To(Succeed())

			item.ValorUnitario = decimal.NewFromFloat(15.90)
			item.Servico = nil
			Expect(repo.UpdateItem(item)).To(Succeed())

			result, err := repo.GetItemByID(item.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.ValorUnitario.Equal(decimal.NewFromFloat(15.90))).To(BeTrue())
		})
	})
})
