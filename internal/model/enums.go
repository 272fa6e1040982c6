package model

// String-backed enums matching the values stored by the production schema.
// The literals are the Spanish store values and must not be translated.

type UserRole string

const (
	RoleClient UserRole = "Cliente"
	RoleAdmin  UserRole = "Administrador"
	RoleVendor UserRole = "Vendedor"
)

type UserState string

const (
	UserActive      UserState = "Activo"
	UserInactive    UserState = "Inactivo"
	UserBlocked     UserState = "Bloqueado"
	UserDeleted     UserState = "Eliminado"
	UserUnconfirmed UserState = "Sin confirmar"
)

type Gender string

const (
	GenderMale   Gender = "Masculino"
	GenderFemale Gender = "Femenino"
	GenderOther  Gender = "Otro"
)

// Genders lists every valid value, used for random fallback selection.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

type ProductCategory string

const (
	CategoryAromatic     ProductCategory = "Velas Aromáticas"
	CategoryDecorative   ProductCategory = "Velas Decorativas"
	CategoryArtisanal    ProductCategory = "Velas Artesanales"
	CategoryPersonalized ProductCategory = "Velas Personalizadas"
	CategoryMemorial     ProductCategory = "Velas de Recordatorio"
)

var ProductCategories = []ProductCategory{
	CategoryAromatic,
	CategoryDecorative,
	CategoryArtisanal,
	CategoryPersonalized,
	CategoryMemorial,
}

type Fragrance string

const (
	FragranceLavender     Fragrance = "Lavanda"
	FragranceRose         Fragrance = "Rosa"
	FragranceCitrus       Fragrance = "Cítricos"
	FragranceVanilla      Fragrance = "Vainilla"
	FragranceChocolate    Fragrance = "Chocolate"
	FragranceEucalyptus   Fragrance = "Eucalipto"
	FragranceMint         Fragrance = "Menta"
	FragranceCinnamon     Fragrance = "Canela"
	FragranceCoffee       Fragrance = "Café"
	FragranceTropical     Fragrance = "Tropical"
	FragranceJasmine      Fragrance = "Jazmín"
	FragranceBaby         Fragrance = "Bebé"
	FragranceSandalwood   Fragrance = "Sándalo"
	FragrancePine         Fragrance = "Pino"
	FragranceNature       Fragrance = "Naturaleza"
	FragranceSofe         Fragrance = "Sofe"
	FragranceFreshCitrus  Fragrance = "Cítricos Frescos"
	FragranceRedBerries   Fragrance = "Frutos Rojos"
	FragranceYellowFruits Fragrance = "Frutos Amarillos"
	FragranceRosemary     Fragrance = "Romero"
	FragranceSpices       Fragrance = "Especias"
	FragranceBubblegum    Fragrance = "Chicle"
	FragranceCoconut      Fragrance = "Coco"
	FragranceTobacco      Fragrance = "Tabaco & Chanelle"
)

var Fragrances = []Fragrance{
	FragranceLavender, FragranceRose, FragranceCitrus, FragranceVanilla,
	FragranceChocolate, FragranceEucalyptus, FragranceMint, FragranceCinnamon,
	FragranceCoffee, FragranceTropical, FragranceJasmine, FragranceBaby,
	FragranceSandalwood, FragrancePine, FragranceNature, FragranceSofe,
	FragranceFreshCitrus, FragranceRedBerries, FragranceYellowFruits,
	FragranceRosemary, FragranceSpices, FragranceBubblegum, FragranceCoconut,
	FragranceTobacco,
}

type ProductState string

const (
	ProductActive   ProductState = "Activo"
	ProductInactive ProductState = "Inactivo"
)

type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "Tarjeta de Crédito"
	PaymentBankTransfer PaymentMethod = "Transferencia Bancaria"
	PaymentPSE          PaymentMethod = "PSE"
)

var PaymentMethods = []PaymentMethod{PaymentCreditCard, PaymentBankTransfer, PaymentPSE}

// OrderState models the order lifecycle. Allowed transitions:
// Pending -> Cancelled, Pending -> Processing -> Shipped -> Delivered,
// Delivered -> Refunded, Cancelled -> Refunded.
type OrderState string

const (
	OrderPending    OrderState = "Pendiente"
	OrderProcessing OrderState = "Procesando"
	OrderShipped    OrderState = "Enviado"
	OrderDelivered  OrderState = "Entregado"
	OrderCancelled  OrderState = "Cancelado"
	OrderRefunded   OrderState = "Reembolsado"
)

type ShipmentState string

const (
	ShipmentPending   ShipmentState = "Pendiente"
	ShipmentInTransit ShipmentState = "En tránsito"
	ShipmentDelivered ShipmentState = "Entregado"
	ShipmentReturned  ShipmentState = "Devuelto"
	ShipmentIncident  ShipmentState = "Incidencia"
)

type DiscountState string

const (
	DiscountActive   DiscountState = "Activo"
	DiscountInactive DiscountState = "Inactivo"
)
