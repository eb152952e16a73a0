package vendure

// GraphQL documents for the Vendure shop API. Mutations on the active order
// use the standard result unions: on success the selection resolves to an
// Order, on a business failure to an ErrorResult with errorCode and message.

const orderFields = `
    id
    code
    state
    total
    totalWithTax
    totalQuantity
    subTotal
    subTotalWithTax
    shipping
    shippingWithTax
    lines {
      id
      productVariant {
        id
        name
        price
        priceWithTax
        product {
          id
          name
          slug
          featuredAsset {
            id
            preview
          }
        }
      }
      quantity
      linePrice
      linePriceWithTax
    }
    shippingAddress {
      fullName
      streetLine1
      city
      postalCode
      country
      phoneNumber
    }
    billingAddress {
      fullName
      streetLine1
      city
      postalCode
      country
      phoneNumber
    }
    customer {
      firstName
      lastName
      emailAddress
      phoneNumber
    }`

const activeOrderQuery = `
  query GetActiveOrder {
    activeOrder {` + orderFields + `
    }
  }`

const addItemMutation = `
  mutation AddItemToOrder($productVariantId: ID!, $quantity: Int!) {
    addItemToOrder(productVariantId: $productVariantId, quantity: $quantity) {
      ... on Order {` + orderFields + `
      }
      ... on ErrorResult {
        errorCode
        message
      }
    }
  }`

const adjustLineMutation = `
  mutation AdjustOrderLine($orderLineId: ID!, $quantity: Int!) {
    adjustOrderLine(orderLineId: $orderLineId, quantity: $quantity) {
      ... on Order {` + orderFields + `
      }
      ... on ErrorResult {
        errorCode
        message
      }
    }
  }`

const removeLineMutation = `
  mutation RemoveOrderLine($orderLineId: ID!) {
    removeOrderLine(orderLineId: $orderLineId) {
      ... on Order {` + orderFields + `
      }
      ... on ErrorResult {
        errorCode
        message
      }
    }
  }`

const setShippingAddressMutation = `
  mutation SetOrderShippingAddress($input: CreateAddressInput!) {
    setOrderShippingAddress(input: $input) {
      ... on Order {` + orderFields + `
      }
      ... on ErrorResult {
        errorCode
        message
      }
    }
  }`

const setBillingAddressMutation = `
  mutation SetOrderBillingAddress($input: CreateAddressInput!) {
    setOrderBillingAddress(input: $input) {
      ... on Order {` + orderFields + `
      }
      ... on ErrorResult {
        errorCode
        message
      }
    }
  }`

const setCustomerMutation = `
  mutation SetCustomerForOrder($input: CreateCustomerInput!) {
    setCustomerForOrder(input: $input) {
      ... on Order {` + orderFields + `
      }
      ... on ErrorResult {
        errorCode
        message
      }
    }
  }`

const eligibleShippingMethodsQuery = `
  query GetShippingMethods {
    eligibleShippingMethods {
      id
      name
      description
      price
      priceWithTax
    }
  }`

const setShippingMethodMutation = `
  mutation SetOrderShippingMethod($shippingMethodId: ID!) {
    setOrderShippingMethod(shippingMethodId: $shippingMethodId) {
      ... on Order {` + orderFields + `
      }
      ... on ErrorResult {
        errorCode
        message
      }
    }
  }`

const transitionStateMutation = `
  mutation TransitionOrderToState($state: String!) {
    transitionOrderToState(state: $state) {
      ... on Order {` + orderFields + `
      }
      ... on OrderStateTransitionError {
        errorCode
        message
      }
    }
  }`

const productFields = `
    id
    name
    slug
    description
    customFields {
      popularityScore
    }
    facetValues {
      id
      name
    }
    featuredAsset {
      id
      preview
    }
    assets {
      id
      name
      preview
    }
    variantList {
      items {
        id
        name
        priceWithTax
        productId
        price
        stockLevel
        actualStockLevel
      }
    }`

const productsQuery = `
  query GetProducts {
    products {
      totalItems
      items {` + productFields + `
      }
    }
  }`

const productBySlugQuery = `
  query Product($slug: String!) {
    product(slug: $slug) {` + productFields + `
    }
  }`
