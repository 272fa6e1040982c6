package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Persistence models for the Amaluz store schema. Table and column names
// follow the production database; the seeder writes every timestamp itself,
// so automatic timestamp tracking is disabled on all models.

// User covers the three roles of the store (admins, vendors, clients).
type User struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:nombre;size:255;not null"`
	Email        string    `gorm:"column:correo;size:255;uniqueIndex;not null"`
	Password     string    `gorm:"column:contrasena;size:255;not null"`
	Phone        string    `gorm:"column:telefono;size:20;uniqueIndex"`
	BirthDate    time.Time `gorm:"column:fecha_nacimiento"`
	Gender       Gender    `gorm:"column:genero;size:20;not null"`
	Role         UserRole  `gorm:"column:tipo_usuario;size:20;not null"`
	State        UserState `gorm:"column:estado;size:20;not null"`
	RegisteredAt time.Time `gorm:"column:fecha_registro;not null;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`
}

func (User) TableName() string { return "usuarios" }

type Provider struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:nombre;size:255;not null"`
	Phone        string    `gorm:"column:telefono;size:20"`
	Address      string    `gorm:"column:direccion;size:255"`
	RegisteredAt time.Time `gorm:"column:fecha_registro;not null;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`
}

func (Provider) TableName() string { return "proveedores" }

type Product struct {
	ID            uint            `gorm:"column:id;primaryKey"`
	Name          string          `gorm:"column:nombre;size:255;uniqueIndex;not null"`
	Description   string          `gorm:"column:descripcion;type:text"`
	SalePrice     decimal.Decimal `gorm:"column:precio_venta;type:decimal(10,2);not null"`
	Category      ProductCategory `gorm:"column:categoria;size:50;not null"`
	Weight        decimal.Decimal `gorm:"column:peso;type:decimal(6,3)"`
	Dimensions    string          `gorm:"column:dimensiones;size:50"`
	ImageURL      string          `gorm:"column:imagen_url;size:255"`
	Fragrance     Fragrance       `gorm:"column:fragancia;size:50;not null"`
	WarrantyDays  int             `gorm:"column:periodo_garantia"`
	State         ProductState    `gorm:"column:estado;size:20;not null"`
	SupplierPrice decimal.Decimal `gorm:"column:precio_proveedor;type:decimal(10,2)"`
	ProviderID    uint            `gorm:"column:proveedor_id;not null"`
	RegisteredAt  time.Time       `gorm:"column:fecha_registro;not null;autoCreateTime:false"`
	UpdatedAt     time.Time       `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`
}

func (Product) TableName() string { return "productos" }

// Inventory is 1:1 with Product. Available never exceeds OnHand and never
// goes negative.
type Inventory struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	ProductID    uint      `gorm:"column:producto_id;uniqueIndex;not null"`
	OnHand       int       `gorm:"column:cantidad_mano;not null"`
	Available    int       `gorm:"column:cantidad_disponible;not null"`
	RegisteredAt time.Time `gorm:"column:fecha_registro;not null;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`
}

func (Inventory) TableName() string { return "inventario" }

// CartItem rows are unique per (user, product).
type CartItem struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	UserID       uint      `gorm:"column:usuario_id;not null;uniqueIndex:idx_carrito_usuario_producto"`
	ProductID    uint      `gorm:"column:producto_id;not null;uniqueIndex:idx_carrito_usuario_producto"`
	Quantity     int       `gorm:"column:cantidad;not null"`
	RegisteredAt time.Time `gorm:"column:fecha_registro;not null;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`
}

func (CartItem) TableName() string { return "carrito" }

type Discount struct {
	ID           uint          `gorm:"column:id;primaryKey"`
	Code         string        `gorm:"column:codigo_descuento;size:50;uniqueIndex;not null"`
	Percentage   int           `gorm:"column:porcentaje;not null"`
	StartDate    time.Time     `gorm:"column:fecha_inicio;not null"`
	EndDate      time.Time     `gorm:"column:fecha_fin;not null"`
	State        DiscountState `gorm:"column:estado;size:20;not null"`
	RegisteredAt time.Time     `gorm:"column:fecha_registro;not null;autoCreateTime:false"`
	UpdatedAt    time.Time     `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`
}

func (Discount) TableName() string { return "descuentos" }

// DiscountUsage records one redemption per (user, discount).
type DiscountUsage struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	UserID       uint      `gorm:"column:usuario_id;not null;uniqueIndex:idx_hist_desc_usuario_descuento"`
	DiscountID   uint      `gorm:"column:descuento_id;not null;uniqueIndex:idx_hist_desc_usuario_descuento"`
	RegisteredAt time.Time `gorm:"column:fecha_registro;not null;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`
}

func (DiscountUsage) TableName() string { return "historial_descuentos" }

type Order struct {
	ID            uint            `gorm:"column:id;primaryKey"`
	UserID        uint            `gorm:"column:usuario_id;not null"`
	LocationID    uint            `gorm:"column:id_localizacion;not null"`
	Code          string          `gorm:"column:codigo_pedido;size:60;uniqueIndex;not null"`
	TotalCost     decimal.Decimal `gorm:"column:costo_total;type:decimal(12,2);not null"`
	PaymentMethod PaymentMethod   `gorm:"column:metodo_pago;size:30;not null"`
	State         OrderState      `gorm:"column:estado_pedido;size:20;not null"`
	RegisteredAt  time.Time       `gorm:"column:fecha_registro;not null;autoCreateTime:false"`
	UpdatedAt     time.Time       `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`

	Details []OrderDetail `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "pedidos" }

type OrderDetail struct {
	ID           uint            `gorm:"column:id;primaryKey"`
	OrderID      uint            `gorm:"column:pedido_id;not null;uniqueIndex:idx_detalle_pedido_producto"`
	ProductID    uint            `gorm:"column:producto_id;not null;uniqueIndex:idx_detalle_pedido_producto"`
	Quantity     int             `gorm:"column:cantidad;not null"`
	UnitPrice    decimal.Decimal `gorm:"column:precio_unitario;type:decimal(10,2);not null"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal;type:decimal(12,2);not null"`
	RegisteredAt time.Time       `gorm:"column:fecha_registro;not null;autoCreateTime:false"`
	UpdatedAt    time.Time       `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`
}

func (OrderDetail) TableName() string { return "detalle_pedido" }

// Shipment is 1:1 with Order; its state mirrors the order state.
type Shipment struct {
	ID                uint            `gorm:"column:id;primaryKey"`
	OrderID           uint            `gorm:"column:pedido_id;uniqueIndex;not null"`
	Carrier           string          `gorm:"column:empresa_envio;size:100;not null"`
	TrackingNumber    string          `gorm:"column:numero_guia;size:60;uniqueIndex;not null"`
	Cost              decimal.Decimal `gorm:"column:costo_envio;type:decimal(10,2);not null"`
	ShippedAt         time.Time       `gorm:"column:fecha_envio"`
	EstimatedDelivery time.Time       `gorm:"column:fecha_entrega_estimada"`
	ActualDelivery    *time.Time      `gorm:"column:fecha_entrega_real"`
	State             ShipmentState   `gorm:"column:estado_envio;size:20;not null"`
	RegisteredAt      time.Time       `gorm:"column:fecha_registro;not null;autoCreateTime:false"`
	UpdatedAt         time.Time       `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`
}

func (Shipment) TableName() string { return "envios" }

type ShippingMethodHistory struct {
	ID           uint            `gorm:"column:id;primaryKey"`
	UserID       uint            `gorm:"column:usuario_id;not null"`
	Carrier      string          `gorm:"column:empresa_envio;size:100;not null"`
	Cost         decimal.Decimal `gorm:"column:costo_envio;type:decimal(10,2);not null"`
	RegisteredAt time.Time       `gorm:"column:fecha_registro;not null;autoCreateTime:false"`
	UpdatedAt    time.Time       `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`
}

func (ShippingMethodHistory) TableName() string { return "historial_metodos_envio" }

type OrderLocation struct {
	ID            uint      `gorm:"column:id;primaryKey"`
	UserID        uint      `gorm:"column:usuario_id;not null"`
	Address1      string    `gorm:"column:direccion_1;size:255;not null"`
	Address2      *string   `gorm:"column:direccion_2;size:255"`
	City          string    `gorm:"column:ciudad;size:100;not null"`
	Department    string    `gorm:"column:departamento;size:100;not null"`
	PostalCode    string    `gorm:"column:codigo_postal;size:10;not null"`
	Description   string    `gorm:"column:descripcion;type:text"`
	DeliveryNotes string    `gorm:"column:notas_entrega;type:text"`
	RegisteredAt  time.Time `gorm:"column:fecha_registro;not null;autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`
}

func (OrderLocation) TableName() string { return "localizacion_pedido" }

type Comment struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	UserID       uint      `gorm:"column:usuario_id;not null"`
	ProductID    uint      `gorm:"column:producto_id;not null"`
	Text         string    `gorm:"column:comentario;type:text;not null"`
	Rating       int       `gorm:"column:calificacion;not null"`
	RegisteredAt time.Time `gorm:"column:fecha_registro;not null;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`
}

func (Comment) TableName() string { return "comentarios" }

// All lists every model for migrations in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{}, &Provider{}, &Product{}, &Inventory{}, &CartItem{},
		&Discount{}, &DiscountUsage{}, &OrderLocation{}, &Order{},
		&OrderDetail{}, &Shipment{}, &ShippingMethodHistory{}, &Comment{},
	}
}
