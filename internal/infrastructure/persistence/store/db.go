package store

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/tienda/internal/infrastructure/config"
	"github.com/xiebiao/tienda/pkg/logger"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 默认使用嵌入式SQLite（纯Go驱动，无需CGO），也可通过配置切换到MySQL/PostgreSQL
// 2. SQLite只允许一个写连接，连接池上限固定为1，数据库本身就是唯一的同步点
// 3. 所有时间统一写入UTC，按月/按日统计使用半开区间查询
// 4. 自动迁移三张表（productos、productos_vendidos、registro_productos）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	// SQL日志通过zap输出
	logLevel := gormlogger.Silent
	if cfg.Database.LogSQL {
		logLevel = gormlogger.Info
	}
	gormLog := gormlogger.New(
		zap.NewStdLog(logger.L().Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLog,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	maxOpen, maxIdle := cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns
	if cfg.Database.Driver == config.DriverSQLite {
		// 单写连接；内存库至少保留一个空闲连接，否则连接关闭后数据丢失
		maxOpen, maxIdle = 1, 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.L().Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// openDialector 根据驱动名选择gorm方言
func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := cfg.ConnString()
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}
}

// autoMigrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，已有的tienda.db可以直接打开
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ProductModel{},
		&SaleModel{},
		&StockLogModel{},
	)
}

// Close 关闭底层连接
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ProductModel GORM商品模型
// 设计说明：
// 1. 表名、列名沿用历史库（西班牙语），便于直接打开已有的tienda.db
// 2. domain/product/entity.go是领域实体，不依赖GORM
type ProductModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:nombre;size:200;not null"`
	Price     float64   `gorm:"column:precio;not null"`
	Quantity  int       `gorm:"column:cantidad;not null;default:0"`
	CreatedAt time.Time `gorm:"column:fecha_creacion;autoCreateTime"`
	Image     string    `gorm:"column:imagen;size:500"`
	Category  string    `gorm:"column:categoria;size:100"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "productos"
}

// SaleModel GORM销售记录模型
// Price、Total在写入时固定，之后不再更新
type SaleModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID uint      `gorm:"column:producto_id;index;not null"`
	Quantity  int       `gorm:"column:cantidad;not null"`
	CreatedAt time.Time `gorm:"column:fecha;index;autoCreateTime"` // 按月/按日统计用
	Price     float64   `gorm:"column:precio;not null"`
	Total     float64   `gorm:"column:costo_total;not null"`
}

// TableName 指定表名
func (SaleModel) TableName() string {
	return "productos_vendidos"
}

// StockLogModel GORM库存日志模型（只追加）
type StockLogModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID uint      `gorm:"column:producto_id;index;not null"`
	Quantity  int       `gorm:"column:cantidad;not null"`
	Action    string    `gorm:"column:accion;size:50;not null"`
	CreatedAt time.Time `gorm:"column:fecha;autoCreateTime"`
}

// TableName 指定表名
func (StockLogModel) TableName() string {
	return "registro_productos"
}
