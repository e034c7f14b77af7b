package migrate

import (
	"context"

	"store-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы и UNIQUE
	CreateFKsViaSQL        bool // FK через SQL (поверх GORM-constraint)
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

func MigrateStoreDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных магазина")

	if opt.CreateExtensions {
		if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
	}

	log.Info("Создание таблиц каталога, заказов и платежей")
	if err := db.WithContext(ctx).AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.ShippingCost{},
		&models.AdminUser{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		if err := db.WithContext(ctx).Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated
BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_products_updated ON products;
CREATE TRIGGER trg_products_updated
BEFORE UPDATE ON products
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("Не удалось создать триггер updated_at", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")

		// Статусы (храним TEXT)
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('PENDING','PAID','SHIPPED','DELIVERED','CANCELLED'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов заказа", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE payments
  DROP CONSTRAINT IF EXISTS chk_payments_status_allowed;
ALTER TABLE payments
  ADD CONSTRAINT chk_payments_status_allowed
  CHECK (status IN ('COMPLETED','FAILED','PENDING'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов платежа", zap.Error(err))
			return err
		}

		// Запас не уходит в минус на уровне схемы
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS chk_products_stock_non_negative;
ALTER TABLE products
  ADD CONSTRAINT chk_products_stock_non_negative
  CHECK (stock >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для products.stock", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS chk_products_price_positive;
ALTER TABLE products
  ADD CONSTRAINT chk_products_price_positive
  CHECK (price_cents > 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для products.price_cents", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для order_items.quantity", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_price_non_negative;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_price_non_negative
  CHECK (unit_price_cents >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для order_items.unit_price_cents", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_total_price_non_negative;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_total_price_non_negative
  CHECK (total_price_cents >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для orders.total_price_cents", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE shipping_costs
  DROP CONSTRAINT IF EXISTS chk_shipping_costs_non_negative;
ALTER TABLE shipping_costs
  ADD CONSTRAINT chk_shipping_costs_non_negative
  CHECK (cost_cents >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для shipping_costs.cost_cents", zap.Error(err))
			return err
		}
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")

		// Уникальности по (order_id, product_id) нет: один товар может входить
		// в заказ несколькими строками с разными размером и цветом
		if err := db.WithContext(ctx).Exec(`
DROP INDEX IF EXISTS ux_order_items_order_product;
CREATE INDEX IF NOT EXISTS ix_order_items_order
ON order_items (order_id);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_order_items_order", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_status_created
ON orders (status, created_at DESC);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_orders_status_created", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
CREATE INDEX IF NOT EXISTS ix_products_category_active
ON products (category_id, is_active);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_products_category_active", zap.Error(err))
			return err
		}

		// Главное изображение первым в выборках
		if err := db.WithContext(ctx).Exec(`
CREATE INDEX IF NOT EXISTS ix_product_images_product_main
ON product_images (product_id, is_main DESC, position);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_product_images_product_main", zap.Error(err))
			return err
		}

		// Текущая стоимость доставки — последняя строка
		if err := db.WithContext(ctx).Exec(`
CREATE INDEX IF NOT EXISTS ix_shipping_costs_created
ON shipping_costs (created_at DESC);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_shipping_costs_created", zap.Error(err))
			return err
		}
	}

	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS fk_products_category,
  ADD CONSTRAINT fk_products_category
    FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE RESTRICT;
`).Error; err != nil {
			log.Error("Не удалось создать FK products.category_id -> categories.id", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE product_images
  DROP CONSTRAINT IF EXISTS fk_product_images_product,
  ADD CONSTRAINT fk_product_images_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("Не удалось создать FK product_images.product_id -> products.id", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("Не удалось создать FK order_items.order_id -> orders.id", zap.Error(err))
			return err
		}

		// История неизменяема: позиции ссылаются на товар без каскада
		if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_product,
  ADD CONSTRAINT fk_order_items_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE RESTRICT;
`).Error; err != nil {
			log.Error("Не удалось создать FK order_items.product_id -> products.id", zap.Error(err))
			return err
		}

		if err := db.WithContext(ctx).Exec(`
ALTER TABLE payments
  DROP CONSTRAINT IF EXISTS fk_payments_order,
  ADD CONSTRAINT fk_payments_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("Не удалось создать FK payments.order_id -> orders.id", zap.Error(err))
			return err
		}
	}

	log.Info("Миграция базы данных магазина успешно завершена")
	return nil
}
